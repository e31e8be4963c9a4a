package youtube

import (
	"context"
	"fmt"
	"net/url"

	"google.golang.org/api/youtube/v3"

	"github.com/Taichi-iskw/ytmeta/internal/errors"
	"github.com/Taichi-iskw/ytmeta/internal/model"
)

// channelListResponse is the part of a channels.list response we read.
// Snippet fields are pointers so that missing fields can be told apart from empty ones.
type channelListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet *struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			CustomURL   *string `json:"customUrl"`
			PublishedAt *string `json:"publishedAt"`
			Country     *string `json:"country"`
		} `json:"snippet"`
		ContentDetails *youtube.ChannelContentDetails `json:"contentDetails"`
	} `json:"items"`
}

// ResolveChannel looks up channel metadata and its uploads playlist.
// Either the legacy user name or the channel ID must be supplied; the channel ID takes precedence.
func (s *youTubeService) ResolveChannel(ctx context.Context, userName, channelID string) (*model.Channel, error) {
	query := url.Values{"part": {"snippet,contentDetails"}}
	lookup := channelID
	switch {
	case channelID != "":
		query.Set("id", channelID)
	case userName != "":
		query.Set("forUsername", userName)
		lookup = userName
	default:
		return nil, errors.New(errors.CodeInvalidArg, "user_name or channel_id required")
	}

	var resp channelListResponse
	if err := s.get(ctx, "channels", query, &resp); err != nil {
		return nil, err
	}

	if len(resp.Items) == 0 {
		return nil, errors.New(errors.CodeNotFound, fmt.Sprintf("channel not found: %s", lookup))
	}
	item := resp.Items[0]

	if item.ContentDetails == nil || item.ContentDetails.RelatedPlaylists == nil ||
		item.ContentDetails.RelatedPlaylists.Uploads == "" {
		return nil, errors.New(errors.CodeNotFound, fmt.Sprintf("channel %s has no uploads playlist", lookup))
	}

	channel := &model.Channel{
		ID:                item.ID,
		Title:             model.NotAvailable,
		Description:       model.NotAvailable,
		CustomURL:         model.NotAvailable,
		PublishedAt:       model.NotAvailable,
		Country:           model.NotAvailable,
		UploadsPlaylistID: item.ContentDetails.RelatedPlaylists.Uploads,
	}

	if snippet := item.Snippet; snippet != nil {
		setIfPresent(&channel.Title, snippet.Title)
		setIfPresent(&channel.Description, snippet.Description)
		setIfPresent(&channel.CustomURL, snippet.CustomURL)
		setIfPresent(&channel.PublishedAt, snippet.PublishedAt)
		setIfPresent(&channel.Country, snippet.Country)
	}

	return channel, nil
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
