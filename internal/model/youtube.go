package model

import "google.golang.org/api/youtube/v3"

// NotAvailable marks channel snippet fields the API did not return
const NotAvailable = "NA"

// Channel represents a resolved YouTube channel and what was collected for it.
// Videos and VideoData are left out while nil; once collected they are written even when empty.
type Channel struct {
	ID                string                    `json:"id" db:"id"`
	Title             string                    `json:"title" db:"title"`
	Description       string                    `json:"description" db:"description"`
	CustomURL         string                    `json:"customUrl" db:"custom_url"`
	PublishedAt       string                    `json:"publishedAt" db:"published_at"`
	Country           string                    `json:"country" db:"country"`
	UploadsPlaylistID string                    `json:"uploads_playlistId" db:"uploads_playlist_id"`
	Videos            []string                  `json:"videos,omitzero"`
	VideoData         map[string]*VideoMetadata `json:"video_data,omitzero"`
}

// VideoMetadata holds the projected subset of a video resource.
// Pointer fields are nil when the API response did not carry them.
type VideoMetadata struct {
	VideoSnippet
	VideoStatistics
	VideoContentDetails
	CategoryTitle *string `json:"categoryTitle,omitempty"`
}

// VideoSnippet lists the snippet fields kept from a video resource
type VideoSnippet struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	PublishedAt *string   `json:"publishedAt,omitempty"`
	CategoryID  *string   `json:"categoryId,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// VideoStatistics lists the statistics fields kept from a video resource.
// Counts stay in the string form the API uses.
type VideoStatistics struct {
	ViewCount     *string `json:"viewCount,omitempty"`
	DislikeCount  *string `json:"dislikeCount,omitempty"`
	FavoriteCount *string `json:"favoriteCount,omitempty"`
	CommentCount  *string `json:"commentCount,omitempty"`
}

// VideoContentDetails lists the contentDetails fields kept from a video resource
type VideoContentDetails struct {
	Duration          *string                                       `json:"duration,omitempty"` // ISO 8601, later HH:MM:SS
	RegionRestriction *youtube.VideoContentDetailsRegionRestriction `json:"regionRestriction,omitempty"`
	ContentRating     *youtube.ContentRating                        `json:"contentRating,omitempty"`
}

// Video is an archived video metadata record together with its owning channel
type Video struct {
	ID        string `json:"id" db:"id"`
	ChannelID string `json:"channel_id" db:"channel_id"`
	VideoMetadata
}
