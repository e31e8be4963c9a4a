package harvest

import (
	"fmt"
	"strings"

	"github.com/Taichi-iskw/ytmeta/internal/config"
	"github.com/Taichi-iskw/ytmeta/internal/model"
)

// FormatDryRun describes the channel workflow a parameters file would run
func FormatDryRun(params *config.Params, output string) string {
	var b strings.Builder

	b.WriteString("DRY RUN\n=======\n")
	fmt.Fprintf(&b, "API key: %s\n", params.MaskedAPIKey())
	fmt.Fprintf(&b, "API base URL: %s\n", params.APIBaseURL)
	fmt.Fprintf(&b, "Progress interval: %d\n\n", params.ProgressInterval)

	b.WriteString("Channels to resolve:\n")
	for _, id := range params.Channels.ChannelIDs {
		fmt.Fprintf(&b, "  - channel ID: %s\n", id)
	}
	for _, name := range params.Channels.UserNames {
		fmt.Fprintf(&b, "  - user name:  %s\n", name)
	}

	fmt.Fprintf(&b, "\nOutput file: %s\n", output)
	b.WriteString("This is a dry run - no API request will be made.\n")

	return b.String()
}

func countVideos(channels []*model.Channel) int {
	total := 0
	for _, ch := range channels {
		total += len(ch.Videos)
	}
	return total
}

func countVideoData(channels []*model.Channel) int {
	total := 0
	for _, ch := range channels {
		total += len(ch.VideoData)
	}
	return total
}
