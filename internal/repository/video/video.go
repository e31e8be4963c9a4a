package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"google.golang.org/api/youtube/v3"

	apperrors "github.com/Taichi-iskw/ytmeta/internal/errors"
	"github.com/Taichi-iskw/ytmeta/internal/model"
	"github.com/Taichi-iskw/ytmeta/internal/repository"
)

// Repository defines operations for archived video metadata
type Repository interface {
	// UpsertBatch inserts or refreshes videos in one transaction and returns the number of rows written
	UpsertBatch(ctx context.Context, videos []*model.Video) (int64, error)

	// GetByID retrieves a video by its ID
	GetByID(ctx context.Context, id string) (*model.Video, error)

	// GetByChannelID retrieves videos by channel ID with pagination
	GetByChannelID(ctx context.Context, channelID string, limit, offset int) ([]*model.Video, error)
}

var videoColumns = []string{
	"id", "channel_id", "title", "description", "published_at", "category_id", "category_title", "tags",
	"view_count", "dislike_count", "favorite_count", "comment_count", "duration",
	"region_restriction", "content_rating",
}

const stagingTable = "videos_staging"

// videoRepository implements Repository using PostgreSQL
type videoRepository struct {
	pool repository.Pool
}

// NewRepository creates a new video Repository
func NewRepository(pool repository.Pool) Repository {
	return &videoRepository{
		pool: pool,
	}
}

// UpsertBatch copies the videos into a temporary staging table (COPY FROM) and
// merges them into videos, updating rows that already exist.
func (r *videoRepository) UpsertBatch(ctx context.Context, videos []*model.Video) (int64, error) {
	if len(videos) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(videos))
	for _, video := range videos {
		row, err := videoRow(video)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, repository.HandlePostgreSQLError(err, "failed to begin transaction")
	}

	createStaging := fmt.Sprintf("CREATE TEMP TABLE %s (LIKE videos INCLUDING DEFAULTS) ON COMMIT DROP", stagingTable)
	if _, err := tx.Exec(ctx, createStaging); err != nil {
		_ = tx.Rollback(ctx)
		return 0, repository.HandlePostgreSQLError(err, "failed to create staging table")
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{stagingTable}, videoColumns, pgx.CopyFromRows(rows)); err != nil {
		_ = tx.Rollback(ctx)
		return 0, repository.HandlePostgreSQLError(err, "failed to copy videos")
	}

	tag, err := tx.Exec(ctx, mergeSQL())
	if err != nil {
		_ = tx.Rollback(ctx)
		return 0, repository.HandlePostgreSQLError(err, "failed to save videos")
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, repository.HandlePostgreSQLError(err, "failed to commit videos")
	}

	return tag.RowsAffected(), nil
}

// GetByID retrieves a video by its ID
func (r *videoRepository) GetByID(ctx context.Context, id string) (*model.Video, error) {
	sql := "SELECT " + strings.Join(videoColumns, ", ") + " FROM videos WHERE id = $1"
	row := r.pool.QueryRow(ctx, sql, id)

	video, err := scanVideo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "video not found")
		}
		return nil, repository.HandlePostgreSQLError(err, "failed to get video")
	}

	return video, nil
}

// GetByChannelID retrieves videos by channel ID with pagination
func (r *videoRepository) GetByChannelID(ctx context.Context, channelID string, limit, offset int) ([]*model.Video, error) {
	sql := "SELECT " + strings.Join(videoColumns, ", ") + " FROM videos WHERE channel_id = $1 ORDER BY id LIMIT $2 OFFSET $3"
	rows, err := r.pool.Query(ctx, sql, channelID, limit, offset)
	if err != nil {
		return nil, repository.HandlePostgreSQLError(err, "failed to get videos by channel ID")
	}
	defer rows.Close()

	videos := []*model.Video{}
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, repository.HandlePostgreSQLError(err, "failed to scan video row")
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, repository.HandlePostgreSQLError(err, "failed to iterate video rows")
	}

	return videos, nil
}

func mergeSQL() string {
	updates := make([]string, 0, len(videoColumns))
	for _, column := range videoColumns[1:] {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}
	updates = append(updates, "updated_at = NOW()")

	columns := strings.Join(videoColumns, ", ")
	return fmt.Sprintf("INSERT INTO videos (%s) SELECT %s FROM %s ON CONFLICT (id) DO UPDATE SET %s",
		columns, columns, stagingTable, strings.Join(updates, ", "))
}

// videoRow flattens a video into COPY FROM values in videoColumns order
func videoRow(video *model.Video) ([]any, error) {
	if video == nil || video.ID == "" || video.ChannelID == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "video ID and channel ID are required")
	}

	regionRestriction, err := jsonColumn(video.RegionRestriction)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, fmt.Sprintf("failed to encode region restriction of %s", video.ID))
	}
	contentRating, err := jsonColumn(video.ContentRating)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, fmt.Sprintf("failed to encode content rating of %s", video.ID))
	}

	var tags []string
	if video.Tags != nil {
		tags = *video.Tags
	}

	return []any{
		video.ID, video.ChannelID, video.Title, video.Description, video.PublishedAt,
		video.CategoryID, video.CategoryTitle, tags,
		video.ViewCount, video.DislikeCount, video.FavoriteCount, video.CommentCount, video.Duration,
		regionRestriction, contentRating,
	}, nil
}

func scanVideo(row pgx.Row) (*model.Video, error) {
	var (
		video             model.Video
		regionRestriction []byte
		contentRating     []byte
	)

	err := row.Scan(
		&video.ID, &video.ChannelID, &video.Title, &video.Description, &video.PublishedAt,
		&video.CategoryID, &video.CategoryTitle, &video.Tags,
		&video.ViewCount, &video.DislikeCount, &video.FavoriteCount, &video.CommentCount, &video.Duration,
		&regionRestriction, &contentRating,
	)
	if err != nil {
		return nil, err
	}

	if video.RegionRestriction, err = decodeJSONColumn[youtube.VideoContentDetailsRegionRestriction](regionRestriction); err != nil {
		return nil, err
	}
	if video.ContentRating, err = decodeJSONColumn[youtube.ContentRating](contentRating); err != nil {
		return nil, err
	}

	return &video, nil
}

// jsonColumn encodes v for a JSONB column; nil stays NULL
func jsonColumn[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func decodeJSONColumn[T any](data []byte) (*T, error) {
	if data == nil {
		return nil, nil
	}
	v := new(T)
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	return v, nil
}
