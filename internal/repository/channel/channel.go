package channel

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/Taichi-iskw/ytmeta/internal/errors"
	"github.com/Taichi-iskw/ytmeta/internal/model"
	"github.com/Taichi-iskw/ytmeta/internal/repository"
)

// Repository defines operations for archived channel records
type Repository interface {
	// Upsert inserts the channel or refreshes its snippet fields
	Upsert(ctx context.Context, channel *model.Channel) error

	// GetByID retrieves a channel by its ID
	GetByID(ctx context.Context, id string) (*model.Channel, error)

	// List retrieves channels with pagination
	List(ctx context.Context, limit, offset int) ([]*model.Channel, error)
}

const channelColumns = "id, title, description, custom_url, published_at, country, uploads_playlist_id"

// channelRepository implements Repository using PostgreSQL
type channelRepository struct {
	pool repository.Pool
}

// NewRepository creates a new channel Repository
func NewRepository(pool repository.Pool) Repository {
	return &channelRepository{
		pool: pool,
	}
}

// Upsert inserts the channel or refreshes its snippet fields
func (r *channelRepository) Upsert(ctx context.Context, channel *model.Channel) error {
	if channel == nil || channel.ID == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "channel ID is required")
	}

	sql := `INSERT INTO channels (` + channelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			custom_url = EXCLUDED.custom_url,
			published_at = EXCLUDED.published_at,
			country = EXCLUDED.country,
			uploads_playlist_id = EXCLUDED.uploads_playlist_id,
			updated_at = NOW()`

	_, err := r.pool.Exec(ctx, sql,
		channel.ID, channel.Title, channel.Description, channel.CustomURL,
		channel.PublishedAt, channel.Country, channel.UploadsPlaylistID,
	)
	if err != nil {
		return repository.HandlePostgreSQLError(err, "failed to save channel")
	}
	return nil
}

// GetByID retrieves a channel by its ID
func (r *channelRepository) GetByID(ctx context.Context, id string) (*model.Channel, error) {
	sql := "SELECT " + channelColumns + " FROM channels WHERE id = $1"
	row := r.pool.QueryRow(ctx, sql, id)

	channel, err := scanChannel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "channel not found")
		}
		return nil, repository.HandlePostgreSQLError(err, "failed to get channel")
	}

	return channel, nil
}

// List retrieves channels with pagination
func (r *channelRepository) List(ctx context.Context, limit, offset int) ([]*model.Channel, error) {
	sql := "SELECT " + channelColumns + " FROM channels ORDER BY id LIMIT $1 OFFSET $2"
	rows, err := r.pool.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, repository.HandlePostgreSQLError(err, "failed to list channels")
	}
	defer rows.Close()

	channels := []*model.Channel{}
	for rows.Next() {
		channel, err := scanChannel(rows)
		if err != nil {
			return nil, repository.HandlePostgreSQLError(err, "failed to scan channel row")
		}
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, repository.HandlePostgreSQLError(err, "failed to iterate channel rows")
	}

	return channels, nil
}

func scanChannel(row pgx.Row) (*model.Channel, error) {
	var channel model.Channel
	err := row.Scan(
		&channel.ID, &channel.Title, &channel.Description, &channel.CustomURL,
		&channel.PublishedAt, &channel.Country, &channel.UploadsPlaylistID,
	)
	if err != nil {
		return nil, err
	}
	return &channel, nil
}
