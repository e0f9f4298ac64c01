// Package cmd wires the CLI: the root command launches the TUI, the
// subcommands expose maintenance and inspection tools.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/capmaster/internal/config"
	"github.com/abhisek/capmaster/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "capmaster",
	Short: "會考 battle trainer",
	Long:  "CapMaster — a terminal battle trainer for the Taiwan junior high comprehensive assessment (國中教育會考).",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CAPMASTER_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides CAPMASTER_CONFIG env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadConfig reads the config file named by --config, or the default
// location when the flag is empty.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	return config.Load(path)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then the config file, then CAPMASTER_DB / the XDG default.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
