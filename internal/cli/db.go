package cli

import (
	"context"
	"fmt"

	"github.com/msomdec/inkpost/internal/config"
	"github.com/msomdec/inkpost/internal/domain"
	"github.com/msomdec/inkpost/internal/repository/postgres"
	"github.com/msomdec/inkpost/internal/repository/sqlite"
)

// openDatabase connects to the configured backend and applies its migrations.
func openDatabase(ctx context.Context, cfg config.Config) (domain.Database, error) {
	var (
		db  domain.Database
		err error
	)
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		db, err = postgres.New(cfg.DatabaseURL)
	default:
		db, err = sqlite.New(cfg.DatabasePath)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}
