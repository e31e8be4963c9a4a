package cmd

import (
	"github.com/Taichi-iskw/ytmeta/cmd/harvest"
)

func init() {
	rootCmd.AddCommand(harvest.NewChannelsCommand(harvest.NewServiceFactory()))
}
