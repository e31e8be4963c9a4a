package youtube

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"google.golang.org/api/youtube/v3"

	"github.com/Taichi-iskw/ytmeta/internal/errors"
	"github.com/Taichi-iskw/ytmeta/internal/model"
)

// FetchCategories returns video category titles keyed by category ID for a region
func (s *youTubeService) FetchCategories(ctx context.Context, regionCode string) (map[string]string, error) {
	if regionCode == "" {
		return nil, errors.New(errors.CodeInvalidArg, "region code is required")
	}

	query := url.Values{
		"part":       {"snippet"},
		"regionCode": {regionCode},
	}

	var resp youtube.VideoCategoryListResponse
	if err := s.get(ctx, "videoCategories", query, &resp); err != nil {
		return nil, err
	}

	categories := make(map[string]string, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Snippet == nil {
			continue
		}
		categories[item.Id] = item.Snippet.Title
	}

	return categories, nil
}

// AttachCategoryTitles sets CategoryTitle from each record's CategoryID.
// A category ID missing from categories is a NOT_FOUND error; records without a category ID are skipped.
func AttachCategoryTitles(records map[string]*model.VideoMetadata, categories map[string]string) error {
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		record := records[id]
		if record == nil || record.CategoryID == nil {
			continue
		}
		title, ok := categories[*record.CategoryID]
		if !ok {
			return errors.New(errors.CodeNotFound,
				fmt.Sprintf("category %s of video %s not found", *record.CategoryID, id))
		}
		record.CategoryTitle = &title
	}

	return nil
}
