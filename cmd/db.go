package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/ytmeta/cmd/db"
)

// dbCmd represents the db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Archive harvested results in PostgreSQL",
	Long: `Store channels and video metadata harvested by 'ytmeta channels' and
'ytmeta videos' in PostgreSQL and query them back. database_url is read from
the parameters file given with --params or from DATABASE_URL.`,
}

func init() {
	factory := db.NewServiceFactory()

	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(db.NewMigrateCommand(factory))
	dbCmd.AddCommand(db.NewSaveCommand(factory))
	dbCmd.AddCommand(db.NewChannelsCommand(factory))
	dbCmd.AddCommand(db.NewChannelCommand(factory))
	dbCmd.AddCommand(db.NewVideosCommand(factory))
	dbCmd.AddCommand(db.NewVideoCommand(factory))
}
