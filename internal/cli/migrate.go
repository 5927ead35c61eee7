package cli

import (
	"fmt"
	"log/slog"

	"github.com/msomdec/inkpost/internal/config"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadDatabase()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		db, err := openDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		slog.Info("database migrations applied", "driver", cfg.DatabaseDriver)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
