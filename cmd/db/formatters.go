package db

import (
	"fmt"
	"strings"

	"github.com/Taichi-iskw/ytmeta/internal/model"
)

// FormatChannelList renders saved channels one block per channel
func FormatChannelList(channels []*model.Channel) string {
	var b strings.Builder
	for _, ch := range channels {
		fmt.Fprintf(&b, "ID: %s\n", ch.ID)
		fmt.Fprintf(&b, "Title: %s\n", ch.Title)
		fmt.Fprintf(&b, "Custom URL: %s\n", ch.CustomURL)
		fmt.Fprintf(&b, "Published: %s\n", ch.PublishedAt)
		fmt.Fprintf(&b, "Uploads playlist: %s\n", ch.UploadsPlaylistID)
		b.WriteString("---\n")
	}
	return b.String()
}

// FormatVideoList renders saved videos one line per video
func FormatVideoList(videos []*model.Video) string {
	var b strings.Builder
	for _, v := range videos {
		fmt.Fprintf(&b, "%s  %s  %s  %s views\n",
			v.ID,
			valueOr(v.Duration, "--:--:--"),
			truncateString(valueOr(v.Title, "(untitled)"), 60),
			valueOr(v.ViewCount, "?"),
		)
	}
	return b.String()
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

// truncateString truncates a string to the specified number of runes
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
