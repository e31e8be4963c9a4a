package archive

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/Taichi-iskw/ytmeta/internal/errors"
	"github.com/Taichi-iskw/ytmeta/internal/model"
	"github.com/Taichi-iskw/ytmeta/internal/repository/channel"
	"github.com/Taichi-iskw/ytmeta/internal/repository/video"
)

// DefaultLimit is the page size used when a list call passes a non-positive limit
const DefaultLimit = 10

// ArchiveService stores harvested results in PostgreSQL and reads them back
type ArchiveService interface {
	SaveChannels(ctx context.Context, channels []*model.Channel) (*SaveSummary, error)
	ListChannels(ctx context.Context, limit, offset int) ([]*model.Channel, error)
	GetChannel(ctx context.Context, id string) (*model.Channel, error)
	ListVideos(ctx context.Context, channelID string, limit, offset int) ([]*model.Video, error)
	GetVideo(ctx context.Context, id string) (*model.Video, error)
}

// SaveSummary counts what SaveChannels wrote
type SaveSummary struct {
	Channels int
	Videos   int64
}

type archiveService struct {
	channelRepo channel.Repository
	videoRepo   video.Repository
	log         zerolog.Logger
}

// NewArchiveService creates a new ArchiveService
func NewArchiveService(channelRepo channel.Repository, videoRepo video.Repository, log zerolog.Logger) ArchiveService {
	return &archiveService{
		channelRepo: channelRepo,
		videoRepo:   videoRepo,
		log:         log,
	}
}

// SaveChannels upserts every channel, then the video metadata collected for it.
// Channels without video_data only store the channel row.
func (s *archiveService) SaveChannels(ctx context.Context, channels []*model.Channel) (*SaveSummary, error) {
	summary := &SaveSummary{}

	for _, ch := range channels {
		if err := s.channelRepo.Upsert(ctx, ch); err != nil {
			return nil, err
		}
		summary.Channels++

		videos := videosOf(ch)
		if len(videos) == 0 {
			s.log.Info().Str("channel", ch.ID).Msg("channel saved without video metadata")
			continue
		}

		written, err := s.videoRepo.UpsertBatch(ctx, videos)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("failed to save videos of channel %s", ch.ID))
		}
		summary.Videos += written

		s.log.Info().Str("channel", ch.ID).Int64("videos", written).Msg("channel saved")
	}

	return summary, nil
}

// ListChannels retrieves saved channels with pagination
func (s *archiveService) ListChannels(ctx context.Context, limit, offset int) ([]*model.Channel, error) {
	limit, offset = normalizePage(limit, offset)

	channels, err := s.channelRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to list channels")
	}
	return channels, nil
}

// GetChannel retrieves one saved channel
func (s *archiveService) GetChannel(ctx context.Context, id string) (*model.Channel, error) {
	if id == "" {
		return nil, errors.New(errors.CodeInvalidArg, "channel ID is required")
	}
	return s.channelRepo.GetByID(ctx, id)
}

// ListVideos retrieves saved videos of a channel with pagination
func (s *archiveService) ListVideos(ctx context.Context, channelID string, limit, offset int) ([]*model.Video, error) {
	if channelID == "" {
		return nil, errors.New(errors.CodeInvalidArg, "channel ID is required")
	}
	limit, offset = normalizePage(limit, offset)

	videos, err := s.videoRepo.GetByChannelID(ctx, channelID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to list videos")
	}
	return videos, nil
}

// GetVideo retrieves one saved video
func (s *archiveService) GetVideo(ctx context.Context, id string) (*model.Video, error) {
	if id == "" {
		return nil, errors.New(errors.CodeInvalidArg, "video ID is required")
	}
	return s.videoRepo.GetByID(ctx, id)
}

// videosOf turns a channel's video_data into archive rows, ordered by video ID
func videosOf(ch *model.Channel) []*model.Video {
	ids := make([]string, 0, len(ch.VideoData))
	for id, record := range ch.VideoData {
		if record != nil {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	videos := make([]*model.Video, 0, len(ids))
	for _, id := range ids {
		videos = append(videos, &model.Video{
			ID:            id,
			ChannelID:     ch.ID,
			VideoMetadata: *ch.VideoData[id],
		})
	}
	return videos
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
