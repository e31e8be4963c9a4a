package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/ytmeta/internal/config"
	"github.com/Taichi-iskw/ytmeta/internal/logger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytmeta",
	Short: "Harvest channel and video metadata from the YouTube Data API",
	Long: `ytmeta resolves YouTube channels, lists every video they uploaded and fetches
per-video metadata, writing the results as JSON. Results can optionally be
archived in PostgreSQL with the 'db' commands.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}

		level, _ := cmd.Flags().GetString("log-level")
		if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" && !cmd.Flags().Changed("log-level") {
			level = envLevel
		}
		log.Logger = logger.Init(level, os.Stderr)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Dotenv file loaded before running a command")
}
