// Package backend selects and constructs the expense store implementation.
package backend

import (
	"fmt"

	"outlay/internal/config"
	"outlay/internal/store"
)

// Type names a store implementation.
type Type string

const (
	Memory   Type = "memory"
	SQLite   Type = "sqlite"
	Postgres Type = "postgres"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite, Postgres:
		return true
	default:
		return false
	}
}

// Types returns every valid backend type.
func Types() []Type {
	return []Type{Memory, SQLite, Postgres}
}

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result carries the constructed store and its cleanup.
type Result struct {
	Store   store.ExpenseStore
	Cleanup CleanupFunc
}

// Config holds the settings needed to construct a backend.
type Config struct {
	Type Type

	SQLiteDBPath string
	PostgresURL  string
}

// FromAppConfig extracts the backend settings from the application config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         backendType,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		PostgresURL:  appConfig.PostgresURL,
	}, nil
}

// Validate checks that the config carries what its backend type needs.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case SQLite:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case Postgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("postgres URL is required for postgres backend")
		}
	case Memory:
		// Nothing to validate.
	}

	return nil
}
