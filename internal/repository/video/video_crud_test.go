package video

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/youtube/v3"

	apperrors "github.com/Taichi-iskw/ytmeta/internal/errors"
	"github.com/Taichi-iskw/ytmeta/internal/model"
)

func strPtr(s string) *string { return &s }

func testVideo(id string) *model.Video {
	tags := []string{"music", "live"}
	return &model.Video{
		ID:        id,
		ChannelID: "UC123456789",
		VideoMetadata: model.VideoMetadata{
			VideoSnippet: model.VideoSnippet{
				Title:       strPtr("Never Gonna Give You Up"),
				Description: strPtr(""),
				PublishedAt: strPtr("2009-10-25T06:57:33Z"),
				CategoryID:  strPtr("10"),
				Tags:        &tags,
			},
			VideoStatistics: model.VideoStatistics{
				ViewCount:     strPtr("1500000000"),
				FavoriteCount: strPtr("0"),
				CommentCount:  strPtr("2300000"),
			},
			VideoContentDetails: model.VideoContentDetails{
				Duration:          strPtr("00:03:33"),
				RegionRestriction: &youtube.VideoContentDetailsRegionRestriction{Blocked: []string{"DE"}},
				ContentRating:     &youtube.ContentRating{YtRating: "ytAgeRestricted"},
			},
			CategoryTitle: strPtr("Music"),
		},
	}
}

func expectUpsert(mock pgxmock.PgxPoolIface, rows int64) {
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TEMP TABLE videos_staging").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"videos_staging"}, videoColumns).
		WillReturnResult(rows)
	mock.ExpectExec("INSERT INTO videos (.+) SELECT (.+) FROM videos_staging ON CONFLICT \\(id\\) DO UPDATE").
		WillReturnResult(pgxmock.NewResult("INSERT", rows))
	mock.ExpectCommit()
}

func TestVideoRepository_UpsertBatch(t *testing.T) {
	tests := []struct {
		name     string
		videos   []*model.Video
		setup    func(mock pgxmock.PgxPoolIface)
		want     int64
		wantCode string
	}{
		{
			name:   "successful batch upsert",
			videos: []*model.Video{testVideo("dQw4w9WgXcQ"), testVideo("oHg5SJYRHA0")},
			setup: func(mock pgxmock.PgxPoolIface) {
				expectUpsert(mock, 2)
			},
			want: 2,
		},
		{
			name:   "sparse record",
			videos: []*model.Video{{ID: "sparse", ChannelID: "UC123456789"}},
			setup: func(mock pgxmock.PgxPoolIface) {
				expectUpsert(mock, 1)
			},
			want: 1,
		},
		{
			name:   "empty batch",
			videos: []*model.Video{},
			setup: func(mock pgxmock.PgxPoolIface) {
				// No expectations for empty batch
			},
			want: 0,
		},
		{
			name:     "video without channel",
			videos:   []*model.Video{{ID: "orphan"}},
			setup:    func(mock pgxmock.PgxPoolIface) {},
			wantCode: apperrors.CodeInvalidArg,
		},
		{
			name:   "copy failure rolls back",
			videos: []*model.Video{testVideo("dQw4w9WgXcQ")},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TEMP TABLE videos_staging").
					WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
				mock.ExpectCopyFrom(pgx.Identifier{"videos_staging"}, videoColumns).
					WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			wantCode: apperrors.CodeInternal,
		},
		{
			name:   "unknown channel rolls back",
			videos: []*model.Video{testVideo("dQw4w9WgXcQ")},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec("CREATE TEMP TABLE videos_staging").
					WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
				mock.ExpectCopyFrom(pgx.Identifier{"videos_staging"}, videoColumns).
					WillReturnResult(1)
				mock.ExpectExec("INSERT INTO videos").
					WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "videos_channel_id_fkey"})
				mock.ExpectRollback()
			},
			wantCode: apperrors.CodeDependency,
		},
		{
			name:   "begin failure",
			videos: []*model.Video{testVideo("dQw4w9WgXcQ")},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin().WillReturnError(assert.AnError)
			},
			wantCode: apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			repo := NewRepository(mock)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			got, err := repo.UpsertBatch(ctx, tt.videos)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			err = mock.ExpectationsWereMet()
			assert.NoError(t, err, "pgxmock expectations were not met")
		})
	}
}

func TestVideoRow(t *testing.T) {
	row, err := videoRow(testVideo("dQw4w9WgXcQ"))
	require.NoError(t, err)
	require.Len(t, row, len(videoColumns))

	assert.Equal(t, "dQw4w9WgXcQ", row[0])
	assert.Equal(t, []string{"music", "live"}, row[7])
	assert.JSONEq(t, `{"blocked": ["DE"]}`, string(row[13].([]byte)))
	assert.JSONEq(t, `{"ytRating": "ytAgeRestricted"}`, string(row[14].([]byte)))

	sparse, err := videoRow(&model.Video{ID: "sparse", ChannelID: "UC1"})
	require.NoError(t, err)
	assert.Nil(t, sparse[7])
	assert.Nil(t, sparse[13])
	assert.Nil(t, sparse[14])
}

func TestVideoRepository_GetByID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		setup    func(mock pgxmock.PgxPoolIface)
		want     *model.Video
		wantCode string
	}{
		{
			name: "video found",
			id:   "dQw4w9WgXcQ",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM videos WHERE id = \\$1").
					WithArgs("dQw4w9WgXcQ").
					WillReturnRows(videoRows(testVideo("dQw4w9WgXcQ")))
			},
			want: testVideo("dQw4w9WgXcQ"),
		},
		{
			name: "video not found",
			id:   "notfound",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM videos WHERE id = \\$1").
					WithArgs("notfound").
					WillReturnRows(pgxmock.NewRows(videoColumns))
			},
			wantCode: apperrors.CodeNotFound,
		},
		{
			name: "database error",
			id:   "dQw4w9WgXcQ",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM videos WHERE id = \\$1").
					WithArgs("dQw4w9WgXcQ").
					WillReturnError(assert.AnError)
			},
			wantCode: apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			repo := NewRepository(mock)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			got, err := repo.GetByID(ctx, tt.id)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Nil(t, got)
				assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			err = mock.ExpectationsWereMet()
			assert.NoError(t, err, "pgxmock expectations were not met")
		})
	}
}

// videoRows renders videos the way the videos table returns them
func videoRows(videos ...*model.Video) *pgxmock.Rows {
	rows := pgxmock.NewRows(videoColumns)
	for _, v := range videos {
		region, _ := jsonColumn(v.RegionRestriction)
		rating, _ := jsonColumn(v.ContentRating)
		rows.AddRow(
			v.ID, v.ChannelID, v.Title, v.Description, v.PublishedAt,
			v.CategoryID, v.CategoryTitle, v.Tags,
			v.ViewCount, v.DislikeCount, v.FavoriteCount, v.CommentCount, v.Duration,
			region, rating,
		)
	}
	return rows
}
