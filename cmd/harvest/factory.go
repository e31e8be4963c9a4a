package harvest

import (
	"github.com/rs/zerolog"

	"github.com/Taichi-iskw/ytmeta/internal/config"
	"github.com/Taichi-iskw/ytmeta/internal/service/youtube"
)

// ServiceFactory creates the YouTube service used by one command run
type ServiceFactory func(params *config.Params, log zerolog.Logger) youtube.YouTubeService

// NewServiceFactory returns the factory backed by the real YouTube Data API client
func NewServiceFactory() ServiceFactory {
	return youtube.NewYouTubeService
}
