package youtube

import (
	"context"
	"iter"
	"math"
	"net/url"
	"strconv"

	"google.golang.org/api/youtube/v3"

	"github.com/Taichi-iskw/ytmeta/internal/errors"
)

// PlaylistPage is one page of a playlistItems.list walk
type PlaylistPage struct {
	VideoIDs     []string
	TotalResults int64
	nextToken    *string
}

// NextPageToken returns the cursor of the following page.
// ok is false on the last page.
func (p *PlaylistPage) NextPageToken() (token string, ok bool) {
	if p.nextToken == nil || *p.nextToken == "" {
		return "", false
	}
	return *p.nextToken, true
}

// Progress configures the optional progress side channel of the paginator.
// Report is called whenever the running count of collected ids is a multiple of Interval.
type Progress struct {
	Interval int
	Report   func(received int, total int64)
}

// step returns Interval rounded to the nearest multiple of PageSize, never less than PageSize
func (p Progress) step() int {
	step := PageSize * int(math.RoundToEven(float64(p.Interval)/PageSize))
	if step <= 0 {
		return PageSize
	}
	return step
}

// playlistItemListResponse mirrors youtube.PlaylistItemListResponse
// with an optional page token.
type playlistItemListResponse struct {
	NextPageToken *string                 `json:"nextPageToken"`
	PageInfo      *youtube.PageInfo       `json:"pageInfo"`
	Items         []*youtube.PlaylistItem `json:"items"`
}

// PlaylistPages walks a playlist lazily, one request per consumed page.
// The sequence stops after the first page without a next page token or after the first error.
func (s *youTubeService) PlaylistPages(ctx context.Context, playlistID string) iter.Seq2[*PlaylistPage, error] {
	return func(yield func(*PlaylistPage, error) bool) {
		if playlistID == "" {
			yield(nil, errors.New(errors.CodeInvalidArg, "uploads playlist ID is required"))
			return
		}

		query := url.Values{
			"part":       {"contentDetails"},
			"playlistId": {playlistID},
			"maxResults": {strconv.Itoa(PageSize)},
		}

		for {
			page, err := s.fetchPlaylistPage(ctx, query)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(page, nil) {
				return
			}

			token, ok := page.NextPageToken()
			if !ok {
				return
			}
			query.Set("pageToken", token)
		}
	}
}

func (s *youTubeService) fetchPlaylistPage(ctx context.Context, query url.Values) (*PlaylistPage, error) {
	var resp playlistItemListResponse
	if err := s.get(ctx, "playlistItems", query, &resp); err != nil {
		return nil, err
	}

	page := &PlaylistPage{
		VideoIDs:  make([]string, 0, len(resp.Items)),
		nextToken: resp.NextPageToken,
	}
	if resp.PageInfo != nil {
		page.TotalResults = resp.PageInfo.TotalResults
	}

	for _, item := range resp.Items {
		if item == nil || item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
			return nil, errors.New(errors.CodeExternal, "playlist item without contentDetails.videoId")
		}
		page.VideoIDs = append(page.VideoIDs, item.ContentDetails.VideoId)
	}

	return page, nil
}

// CollectVideoIDs folds a page sequence into the de-duplicated list of video IDs.
// Duplicates across pages are dropped; the first occurrence keeps its position.
func CollectVideoIDs(pages iter.Seq2[*PlaylistPage, error], progress Progress) ([]string, error) {
	step := progress.step()

	var ids []string
	for page, err := range pages {
		if err != nil {
			return nil, err
		}
		ids = append(ids, page.VideoIDs...)

		if progress.Report != nil && len(ids)%step == 0 {
			progress.Report(len(ids), page.TotalResults)
		}
	}

	return uniqueIDs(ids), nil
}

// ListVideoIDs returns every video ID of the playlist
func (s *youTubeService) ListVideoIDs(ctx context.Context, playlistID string, progress Progress) ([]string, error) {
	return CollectVideoIDs(s.PlaylistPages(ctx, playlistID), progress)
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
