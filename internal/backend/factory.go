package backend

import (
	"fmt"
	"log/slog"

	"outlay/internal/store/memory"
	"outlay/internal/store/postgres"
	"outlay/internal/store/sqlite"
)

// Factory creates stores based on configuration.
type Factory interface {
	CreateBackend(config Config) (*Result, error)
}

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLite:
		return f.createSQLiteBackend(config)
	case Postgres:
		return f.createPostgresBackend(config)
	case Memory:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := sqlite.NewRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)

	return &Result{Store: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createPostgresBackend(config Config) (*Result, error) {
	repo, err := postgres.NewRepository(config.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Postgres repository: %w", err)
	}

	f.logger.Info("Initialized Postgres backend")

	return &Result{Store: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*Result, error) {
	st := memory.New()

	f.logger.Info("Initialized memory backend")

	return &Result{Store: st, Cleanup: nil}, nil
}
