// Package cli holds the campusclubs command tree.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/yigit/campusclubs/internal/bootstrap"
)

var configPath string

// rootCmd runs the API server when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "campusclubs",
	Short: "Campus clubs API server",
	Long: `Campus clubs API server. Usage:

	campusclubs [serve]          start the HTTP server
	campusclubs migrate up       apply pending migrations
	campusclubs seed [--demo]    create the admin account and demo data
`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", bootstrap.DefaultConfigPath, "path to the YAML config file")
}
