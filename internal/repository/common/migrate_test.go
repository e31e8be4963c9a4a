package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"000001_create_channels.down.sql",
		"000001_create_channels.up.sql",
		"000002_create_videos.down.sql",
		"000002_create_videos.up.sql",
	}, names)
}

func TestMigrations_CreateArchiveTables(t *testing.T) {
	channels, err := migrationFiles.ReadFile("migrations/000001_create_channels.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(channels), "CREATE TABLE IF NOT EXISTS channels")
	assert.Contains(t, string(channels), "uploads_playlist_id")

	videos, err := migrationFiles.ReadFile("migrations/000002_create_videos.up.sql")
	require.NoError(t, err)
	for _, column := range []string{"category_title", "tags", "favorite_count", "region_restriction", "content_rating"} {
		assert.True(t, strings.Contains(string(videos), column), "videos table misses %s", column)
	}
}

func TestRunMigrations_InvalidURL(t *testing.T) {
	_, err := RunMigrations("mysql://nowhere/db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create migrate instance")
}
