package cmd

import (
	"fmt"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the PostgreSQL migrations.",
		Long:  `Brings the database at DATABASE_URL up to the latest schema. Only the postgres store driver uses it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = cfg.Database.MigrationsDir
			}

			if err := database.RunMigrations(cfg.Database.URL, dir, log); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("dir", "", "Directory containing the migration files (defaults to MIGRATIONS_DIR)")

	return cmd
}
