package cmd

import (
	"github.com/Taichi-iskw/ytmeta/cmd/harvest"
)

func init() {
	rootCmd.AddCommand(harvest.NewVideosCommand(harvest.NewServiceFactory()))
}
