package youtube

import (
	"context"
	"iter"

	"github.com/rs/zerolog"

	"github.com/Taichi-iskw/ytmeta/internal/config"
	"github.com/Taichi-iskw/ytmeta/internal/model"
	"github.com/Taichi-iskw/ytmeta/internal/service/common"
)

// PageSize is the number of items requested per playlist page and per video batch
const PageSize = 50

// YouTubeService is interface for YouTube Data API operations
type YouTubeService interface {
	ResolveChannel(ctx context.Context, userName, channelID string) (*model.Channel, error)
	PlaylistPages(ctx context.Context, playlistID string) iter.Seq2[*PlaylistPage, error]
	ListVideoIDs(ctx context.Context, playlistID string, progress Progress) ([]string, error)
	FetchVideoMetadata(ctx context.Context, videoIDs []string) (map[string]*model.VideoMetadata, error)
	FetchCategories(ctx context.Context, regionCode string) (map[string]string, error)
	HarvestChannels(ctx context.Context, params *config.Params) ([]*model.Channel, error)
	EnrichChannels(ctx context.Context, channels []*model.Channel, regionCode string) error
}

// youTubeService implements YouTubeService
type youTubeService struct {
	client  common.HTTPClient
	baseURL string
	apiKey  string
	log     zerolog.Logger
}

// NewYouTubeService creates a new YouTubeService from run parameters
func NewYouTubeService(params *config.Params, log zerolog.Logger) YouTubeService {
	return NewYouTubeServiceWithClient(common.NewHTTPClient(), params.APIBaseURL, params.APIKey, log)
}

// NewYouTubeServiceWithClient creates a new YouTubeService with custom HTTPClient and base URL (for testing)
func NewYouTubeServiceWithClient(client common.HTTPClient, baseURL, apiKey string, log zerolog.Logger) YouTubeService {
	return &youTubeService{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
	}
}
