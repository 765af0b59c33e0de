// Package cli implements the strictwatch command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/strictwatch/internal/config"
	"github.com/crimson-sun/strictwatch/internal/logging"
)

// cfg is loaded once per invocation by the root command.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "strictwatch",
	Short: "Watch Android StrictMode output and report violations",
	Long: `strictwatch follows logcat output filtered to StrictMode and System.err,
groups related lines into incidents, classifies each incident by violation
kind, keeps the most recent incidents, and raises one notification per
incident.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file (default ~/.config/strictwatch/config.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(watchCmd, listCmd, showCmd, clearCmd, reviewCmd, kindsCmd, versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		loaded.Logging.Level = level
	}
	cfg = loaded
	logging.Init(cfg.Logging.Format, logging.ParseLevel(cfg.Logging.Level))
	return nil
}
