package harvest

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/ytmeta/internal/config"
	"github.com/Taichi-iskw/ytmeta/internal/jsonfile"
)

// DefaultOutputFile is where both workflows write their results unless -o is given
const DefaultOutputFile = "video_ids.json"

// NewChannelsCommand creates the channel workflow command
func NewChannelsCommand(factory ServiceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channels PARAMS_FILE",
		Short: "Resolve channels and list their uploaded videos",
		Long: `Resolve every channel listed in the parameters file (channel IDs first, then
legacy user names), walk each channel's uploads playlist and write the channel
records with their video IDs to a JSON file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := config.LoadParams(args[0])
			if err != nil {
				return err
			}
			if err := params.ValidateChannels(); err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			if dryRun {
				cmd.Print(FormatDryRun(params, output))
				return nil
			}

			service := factory(params, log.Logger)
			channels, err := service.HarvestChannels(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to harvest channels: %w", err)
			}

			if err := jsonfile.Write(output, channels); err != nil {
				return err
			}

			cmd.Printf("Wrote %d channel(s) with %d video ID(s) to %s\n", len(channels), countVideos(channels), output)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", DefaultOutputFile, "Output file name")
	cmd.Flags().Bool("dry-run", false, "Show what would be resolved without calling the API")

	return cmd
}

// NewVideosCommand creates the video metadata workflow command
func NewVideosCommand(factory ServiceFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos PARAMS_FILE INPUT_FILE",
		Short: "Fetch metadata for every video of harvested channels",
		Long: `Read channel records written by 'ytmeta channels', fetch snippet, statistics and
content details of every listed video, normalize durations to HH:MM:SS, join the
category titles of the configured region and write the enriched records to a JSON file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := config.LoadParams(args[0])
			if err != nil {
				return err
			}

			channels, err := jsonfile.ReadChannels(args[1])
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			if region, _ := cmd.Flags().GetString("region"); region != "" {
				params.RegionCode = region
			}

			service := factory(params, log.Logger)
			if err := service.EnrichChannels(cmd.Context(), channels, params.RegionCode); err != nil {
				return fmt.Errorf("failed to fetch video metadata: %w", err)
			}

			if err := jsonfile.Write(output, channels); err != nil {
				return err
			}

			cmd.Printf("Wrote metadata of %d video(s) from %d channel(s) to %s\n", countVideoData(channels), len(channels), output)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", DefaultOutputFile, "Output file name")
	cmd.Flags().String("region", "", "Region code for category titles (overrides region_code)")

	return cmd
}
