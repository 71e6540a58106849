package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yigit/campusclubs/internal/bootstrap"
)

var seedDemo bool

// seedCmd creates the default admin and optionally the demo clubs
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account and optional demo data",
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

		if err := bootstrap.RunSeed(cmd.Context(), cfg, database.Pool, seedDemo || cfg.Seed.Demo, lgr); err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		lgr.Info().Bool("demo", seedDemo || cfg.Seed.Demo).Msg("Seed complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "also create demo users, clubs and events")
}
