package youtube

import (
	"context"
	"net/url"
	"strings"

	"github.com/Taichi-iskw/ytmeta/internal/model"
)

// videoListResponse is the part of a videos.list response we read.
// Decoding into the model types keeps only the enumerated fields.
type videoListResponse struct {
	Items []struct {
		ID             string                     `json:"id"`
		Snippet        *model.VideoSnippet        `json:"snippet"`
		Statistics     *model.VideoStatistics     `json:"statistics"`
		ContentDetails *model.VideoContentDetails `json:"contentDetails"`
	} `json:"items"`
}

// FetchVideoMetadata fetches snippet, statistics and content details for the given videos
// in consecutive batches of PageSize IDs. Any failed batch aborts the whole fetch.
func (s *youTubeService) FetchVideoMetadata(ctx context.Context, videoIDs []string) (map[string]*model.VideoMetadata, error) {
	records := make(map[string]*model.VideoMetadata, len(videoIDs))

	for start := 0; start < len(videoIDs); start += PageSize {
		end := min(start+PageSize, len(videoIDs))

		query := url.Values{
			"part": {"snippet,statistics,contentDetails"},
			"id":   {strings.Join(videoIDs[start:end], ",")},
		}

		var resp videoListResponse
		if err := s.get(ctx, "videos", query, &resp); err != nil {
			return nil, err
		}

		for _, item := range resp.Items {
			record := &model.VideoMetadata{}
			if item.Snippet != nil {
				record.VideoSnippet = *item.Snippet
			}
			if item.Statistics != nil {
				record.VideoStatistics = *item.Statistics
			}
			if item.ContentDetails != nil {
				record.VideoContentDetails = *item.ContentDetails
			}
			records[item.ID] = record
		}

		s.log.Debug().Int("fetched", end).Int("total", len(videoIDs)).Msg("video metadata batch")
	}

	return records, nil
}
