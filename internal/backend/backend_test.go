package backend

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"outlay/internal/config"
	"outlay/internal/core"
)

func TestFromAppConfig(t *testing.T) {
	appCfg := &config.Config{
		DataBackend:  "sqlite",
		SQLiteDBPath: "/tmp/outlay.db",
		PostgresURL:  "postgres://localhost/outlay",
	}

	cfg, err := FromAppConfig(appCfg)
	if err != nil {
		t.Fatalf("from app config: %v", err)
	}
	if cfg.Type != SQLite || cfg.SQLiteDBPath != "/tmp/outlay.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	if _, err := FromAppConfig(&config.Config{DataBackend: "redis"}); err == nil {
		t.Fatal("unknown backend should be rejected")
	}
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("nil app config should be rejected")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Type: Memory}, false},
		{"sqlite with path", Config{Type: SQLite, SQLiteDBPath: "x.db"}, false},
		{"sqlite without path", Config{Type: SQLite}, true},
		{"postgres with url", Config{Type: Postgres, PostgresURL: "postgres://h/d"}, false},
		{"postgres without url", Config{Type: Postgres}, true},
		{"unknown", Config{Type: Type("redis")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFactoryCreatesMemoryBackend(t *testing.T) {
	factory := NewFactory(nil)

	result, err := factory.CreateBackend(Config{Type: Memory})
	if err != nil {
		t.Fatalf("create memory backend: %v", err)
	}
	if result.Store == nil {
		t.Fatal("expected a store")
	}
	if result.Cleanup != nil {
		t.Fatal("memory backend needs no cleanup")
	}
}

func TestFactoryCreatesSQLiteBackend(t *testing.T) {
	factory := NewFactory(nil)

	dbPath := filepath.Join(t.TempDir(), "outlay.db")
	result, err := factory.CreateBackend(Config{Type: SQLite, SQLiteDBPath: dbPath})
	if err != nil {
		t.Fatalf("create sqlite backend: %v", err)
	}
	defer result.Cleanup()

	created, err := result.Store.Create(context.Background(), core.Expense{
		Amount:   core.Money{Cents: 500},
		Category: core.CategoryOther,
		Date:     core.NewDate(2024, time.June, 1),
	})
	if err != nil {
		t.Fatalf("create through sqlite store: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned id")
	}
}

func TestFactoryRejectsInvalidConfig(t *testing.T) {
	factory := NewFactory(nil)

	if _, err := factory.CreateBackend(Config{Type: Type("redis")}); err == nil {
		t.Fatal("invalid backend type should be rejected")
	}
	if _, err := factory.CreateBackend(Config{Type: SQLite}); err == nil {
		t.Fatal("sqlite without path should be rejected")
	}
}
