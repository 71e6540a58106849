package cli

import (
	"github.com/spf13/cobra"
	"github.com/yigit/campusclubs/internal/bootstrap"
)

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
		if err != nil {
			return err
		}

		database, err := bootstrap.SetupDatabase(cmd.Context(), cfg, lgr)
		if err != nil {
			return err
		}
		defer database.Close()

		return bootstrap.RunMigrations(cmd.Context(), cfg, database.Pool, lgr)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
}
