// Package postgres is the alternate storage backend, built on GORM with the
// Postgres driver. It satisfies the same domain interfaces as the SQLite store.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/msomdec/inkpost/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ domain.Database = (*DB)(nil)

// DB wraps a GORM connection to Postgres.
type DB struct {
	gorm *gorm.DB
}

// New opens a connection to the database described by dsn.
func New(dsn string) (*DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return &DB{gorm: db}, nil
}

// Migrate brings the schema up to date using GORM's auto-migration.
func (d *DB) Migrate(ctx context.Context) error {
	if err := d.gorm.WithContext(ctx).AutoMigrate(&userRow{}, &postRow{}, &commentRow{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *DB) Users() domain.UserRepository {
	return &userRepo{db: d.gorm}
}

func (d *DB) Posts() domain.PostRepository {
	return &postRepo{db: d.gorm}
}

func (d *DB) Comments() domain.CommentRepository {
	return &commentRepo{db: d.gorm}
}

// isUniqueViolation reports whether err is Postgres error 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// notFound maps gorm.ErrRecordNotFound onto domain.ErrNotFound and wraps
// anything else under op.
func notFound(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
