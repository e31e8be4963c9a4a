package youtube

import (
	"context"

	"github.com/Taichi-iskw/ytmeta/internal/config"
	"github.com/Taichi-iskw/ytmeta/internal/errors"
	"github.com/Taichi-iskw/ytmeta/internal/model"
)

// HarvestChannels resolves every configured channel (IDs first, then user names)
// and collects the video IDs of each channel's uploads playlist.
func (s *youTubeService) HarvestChannels(ctx context.Context, params *config.Params) ([]*model.Channel, error) {
	if params == nil {
		return nil, errors.New(errors.CodeParams, "parameters are required")
	}
	if err := params.ValidateChannels(); err != nil {
		return nil, err
	}

	channels := make([]*model.Channel, 0, len(params.Channels.ChannelIDs)+len(params.Channels.UserNames))
	for _, id := range params.Channels.ChannelIDs {
		channel, err := s.ResolveChannel(ctx, "", id)
		if err != nil {
			return nil, err
		}
		channels = append(channels, channel)
	}
	for _, name := range params.Channels.UserNames {
		channel, err := s.ResolveChannel(ctx, name, "")
		if err != nil {
			return nil, err
		}
		channels = append(channels, channel)
	}

	for _, channel := range channels {
		s.log.Info().Str("playlist", channel.UploadsPlaylistID).Msg("getting video list from channel")

		progress := Progress{
			Interval: params.ProgressInterval,
			Report: func(received int, total int64) {
				s.log.Info().Int("received", received).Int64("total", total).Msg("collecting video ids")
			},
		}

		ids, err := s.ListVideoIDs(ctx, channel.UploadsPlaylistID, progress)
		if err != nil {
			return nil, err
		}
		channel.Videos = ids

		s.log.Info().Str("channel", channel.ID).Int("videos", len(ids)).Msg("video list done")
	}

	return channels, nil
}

// EnrichChannels fetches metadata for every video of every channel, normalizes
// durations, joins category titles and stores the result in VideoData.
func (s *youTubeService) EnrichChannels(ctx context.Context, channels []*model.Channel, regionCode string) error {
	categories, err := s.FetchCategories(ctx, regionCode)
	if err != nil {
		return err
	}

	for _, channel := range channels {
		s.log.Info().Str("channel", channel.ID).Int("videos", len(channel.Videos)).Msg("fetching video metadata")

		records, err := s.FetchVideoMetadata(ctx, channel.Videos)
		if err != nil {
			return err
		}
		if err := NormalizeDurations(records); err != nil {
			return err
		}
		if err := AttachCategoryTitles(records, categories); err != nil {
			return err
		}
		channel.VideoData = records
	}

	return nil
}
