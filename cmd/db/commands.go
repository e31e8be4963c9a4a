package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/ytmeta/internal/config"
	"github.com/Taichi-iskw/ytmeta/internal/jsonfile"
	"github.com/Taichi-iskw/ytmeta/internal/service/archive"
)

// NewMigrateCommand creates the schema migration command
func NewMigrateCommand(factory ServiceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long:  `Create or upgrade the channels and videos tables in the database named by database_url.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := loadParams(cmd)
			if err != nil {
				return err
			}

			version, err := factory.Migrate(params)
			if err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			cmd.Printf("Database schema is at version %d\n", version)
			return nil
		},
	}

	addParamsFlag(cmd)
	return cmd
}

// NewSaveCommand creates the command storing a results file in the database
func NewSaveCommand(factory ServiceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save RESULTS_FILE",
		Short: "Save harvested channels and video metadata",
		Long: `Upsert the channels of a results file written by 'ytmeta channels' or 'ytmeta videos'.
Video rows are only stored for channels carrying video_data.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			channels, err := jsonfile.ReadChannels(args[0])
			if err != nil {
				return err
			}

			return withService(cmd, factory, func(ctx context.Context, service archive.ArchiveService) error {
				summary, err := service.SaveChannels(ctx, channels)
				if err != nil {
					return fmt.Errorf("failed to save results: %w", err)
				}

				cmd.Printf("Saved %d channel(s) and %d video(s)\n", summary.Channels, summary.Videos)
				return nil
			})
		},
	}

	addParamsFlag(cmd)
	return cmd
}

// NewChannelsCommand creates the list saved channels command
func NewChannelsCommand(factory ServiceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channels",
		Short: "List saved channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			return withService(cmd, factory, func(ctx context.Context, service archive.ArchiveService) error {
				channels, err := service.ListChannels(ctx, limit, offset)
				if err != nil {
					return err
				}

				if len(channels) == 0 {
					cmd.Println("No channels found")
					return nil
				}

				cmd.Print(FormatChannelList(channels))
				return nil
			})
		},
	}

	addParamsFlag(cmd)
	cmd.Flags().Int("limit", archive.DefaultLimit, "Maximum number of channels to list")
	cmd.Flags().Int("offset", 0, "Number of channels to skip")
	return cmd
}

// NewChannelCommand creates the get saved channel command
func NewChannelCommand(factory ServiceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel CHANNEL_ID",
		Short: "Show a saved channel as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, factory, func(ctx context.Context, service archive.ArchiveService) error {
				channel, err := service.GetChannel(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, channel)
			})
		},
	}

	addParamsFlag(cmd)
	return cmd
}

// NewVideosCommand creates the list saved videos command
func NewVideosCommand(factory ServiceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos CHANNEL_ID",
		Short: "List saved videos of a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			channelID := args[0]
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			return withService(cmd, factory, func(ctx context.Context, service archive.ArchiveService) error {
				videos, err := service.ListVideos(ctx, channelID, limit, offset)
				if err != nil {
					return err
				}

				if len(videos) == 0 {
					cmd.Println("No videos found for channel", channelID)
					return nil
				}

				cmd.Printf("Videos of channel %s:\n\n", channelID)
				cmd.Print(FormatVideoList(videos))
				return nil
			})
		},
	}

	addParamsFlag(cmd)
	cmd.Flags().Int("limit", archive.DefaultLimit, "Maximum number of videos to list")
	cmd.Flags().Int("offset", 0, "Number of videos to skip")
	return cmd
}

// NewVideoCommand creates the get saved video command
func NewVideoCommand(factory ServiceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video VIDEO_ID",
		Short: "Show a saved video as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, factory, func(ctx context.Context, service archive.ArchiveService) error {
				video, err := service.GetVideo(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, video)
			})
		},
	}

	addParamsFlag(cmd)
	return cmd
}

func addParamsFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("params", "p", config.DefaultParamsFile, "Parameters file holding database_url")
}

func loadParams(cmd *cobra.Command) (*config.Params, error) {
	path, _ := cmd.Flags().GetString("params")
	return config.LoadDatabaseParams(path)
}

// withService loads the parameters, opens the archive service and closes it after fn returns
func withService(cmd *cobra.Command, factory ServiceFactory, fn func(ctx context.Context, service archive.ArchiveService) error) error {
	params, err := loadParams(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	service, cleanup, err := factory.CreateService(ctx, params, log.Logger)
	if err != nil {
		return fmt.Errorf("failed to create archive service: %w", err)
	}
	defer cleanup()

	return fn(ctx, service)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := jsonfile.Encode(v)
	if err != nil {
		return err
	}
	cmd.Print(string(data))
	return nil
}
