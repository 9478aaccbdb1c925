package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"todo-lists-api/internal/config"
	"todo-lists-api/internal/store/memorystore"
	"todo-lists-api/internal/store/postgres"
	"todo-lists-api/internal/store/sqlite"
	"todo-lists-api/internal/todolist"
)

var ErrNoMigrations = errors.New("store driver has no migrations")

// Backend is a persistence gateway that owns a connection.
type Backend interface {
	todolist.Repository
	PingContext(ctx context.Context) error
	Close() error
}

// Store is the process-wide persistence handle. Open it once at startup
// and Close it on shutdown.
type Store struct {
	Lists    Backend
	Migrator *goose.Provider // nil for the memory driver
	Driver   string
}

func Open(ctx context.Context, cfg config.Store, logger *slog.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return &Store{Lists: memorystore.NewListStore(), Driver: cfg.Driver}, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.ConnectAttempts, logger)
		if err != nil {
			return nil, err
		}
		m, err := postgres.NewMigrator(db)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("postgres migrations: %w", err)
		}
		return &Store{Lists: postgres.NewListRepo(db), Migrator: m, Driver: cfg.Driver}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		m, err := sqlite.NewMigrator(db)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite migrations: %w", err)
		}
		return &Store{Lists: sqlite.NewListRepo(db), Migrator: m, Driver: cfg.Driver}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// MigrateUp applies all pending migrations. It is a no-op for the memory
// driver.
func (s *Store) MigrateUp(ctx context.Context, logger *slog.Logger) error {
	if s.Migrator == nil {
		return nil
	}
	results, err := s.Migrator.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	for _, r := range results {
		logger.Info("migration applied",
			"driver", s.Driver,
			"version", r.Source.Version,
			"path", r.Source.Path,
			"dur_ms", r.Duration.Milliseconds(),
		)
	}
	return nil
}

// MigrateDown rolls back the most recently applied migration.
func (s *Store) MigrateDown(ctx context.Context, logger *slog.Logger) error {
	if s.Migrator == nil {
		return ErrNoMigrations
	}
	r, err := s.Migrator.Down(ctx)
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	logger.Info("migration rolled back",
		"driver", s.Driver,
		"version", r.Source.Version,
		"path", r.Source.Path,
		"dur_ms", r.Duration.Milliseconds(),
	)
	return nil
}

func (s *Store) MigrationStatus(ctx context.Context) ([]*goose.MigrationStatus, error) {
	if s.Migrator == nil {
		return nil, ErrNoMigrations
	}
	st, err := s.Migrator.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration status: %w", err)
	}
	return st, nil
}

func (s *Store) Close() error {
	return s.Lists.Close()
}
