package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/ytmeta/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage parameters files",
	Long:  `Create and inspect ytmeta parameters files.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init [PARAMS_FILE]",
	Short: "Initialize a parameters file",
	Long:  `Create a new parameters file template. Defaults to params.yaml in the current directory.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultParamsFile
		if len(args) > 0 {
			path = args[0]
		}
		apiKey, _ := cmd.Flags().GetString("api-key")

		if err := config.InitParams(path, apiKey); err != nil {
			return err
		}

		cmd.Printf("Created parameters file: %s\n", path)
		cmd.Println("Please list the channels to harvest under channels.channel_ids or channels.user_names.")

		return nil
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show [PARAMS_FILE]",
	Short: "Show effective parameters",
	Long:  `Display the parameters after environment overrides and defaults are applied. The API key is masked.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultParamsFile
		if len(args) > 0 {
			path = args[0]
		}

		params, err := config.LoadParams(path)
		if err != nil {
			return err
		}

		cmd.Printf("Parameters file: %s\n\n", path)
		cmd.Printf("API key: %s\n", params.MaskedAPIKey())
		cmd.Printf("Channel IDs: %v\n", params.Channels.ChannelIDs)
		cmd.Printf("User names: %v\n", params.Channels.UserNames)
		cmd.Printf("Region code: %s\n", params.RegionCode)
		cmd.Printf("Progress interval: %d\n", params.ProgressInterval)
		cmd.Printf("API base URL: %s\n", params.APIBaseURL)

		if dbConfig, err := params.ParseDatabaseConfig(); err == nil {
			cmd.Printf("Database: %s@%s:%d/%s\n", dbConfig.User, dbConfig.Host, dbConfig.Port, dbConfig.DBName)
		} else {
			cmd.Println("Database: not configured")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().String("api-key", "", "API key written to the new file")
}
