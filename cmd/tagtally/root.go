package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agenthands/tagtally/internal/app"
	"github.com/agenthands/tagtally/internal/config"
	"github.com/agenthands/tagtally/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tagtally",
	Short: "Count legend tags in architectural plans with a vision model",
	Long: `tagtally reads a legend table and a plan drawing, asks a vision-language
model for the legend's tags and the plan's text tokens, and counts how often
each legend tag appears in the plan.

Configuration comes from a TOML file (--config, CONFIG_PATH or
config/config.toml) and the environment. A .env file in the working directory
is loaded first.`,
	Version:      version.GitRelease,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: $CONFIG_PATH or config/config.toml)",
	)

	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	return app.LoadConfig(app.ConfigPath(cfgFile))
}
