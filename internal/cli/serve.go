package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yigit/campusclubs/internal/server"
)

var (
	skipMigrations bool
	skipSeed       bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the campus clubs API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.NewServer(cmd.Context(), server.Options{
		ConfigPath:     configPath,
		SkipMigrations: skipMigrations,
		SkipSeed:       skipSeed,
	})
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	if err := srv.Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on startup")
		c.Flags().BoolVar(&skipSeed, "skip-seed", false, "do not create default data on startup")
	}
}
