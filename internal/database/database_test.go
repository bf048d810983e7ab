package database

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/prubianes/guit-app-api/internal/config"
	"github.com/prubianes/guit-app-api/internal/logger"
)

func init() {
	logger.Init("test")
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost: "db", DBPort: "5433", DBUser: "guit", DBPassword: "p@ss word",
		DBName: "ledger", DBSSLMode: "require",
	}

	if got := DSN(cfg); got != "host=db port=5433 user=guit password=p@ss word dbname=ledger sslmode=require" {
		t.Errorf("unexpected DSN %q", got)
	}

	url := MigrationURL(cfg)
	if !strings.HasPrefix(url, "postgres://guit:p%40ss%20word@db:5433/ledger") {
		t.Errorf("password not escaped in %q", url)
	}
	if !strings.HasSuffix(url, "?sslmode=require") {
		t.Errorf("missing sslmode in %q", url)
	}
}

func TestManager_SQLite(t *testing.T) {
	cfg := &config.Config{
		Env:        "test",
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "guit.db"),
	}

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer func() {
		if err := m.Close(); err != nil {
			t.Errorf("close failed: %v", err)
		}
	}()

	if err := m.RunMigrations(); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}
	// Idempotent.
	if err := m.RunMigrations(); err != nil {
		t.Fatalf("second migration run failed: %v", err)
	}

	for _, table := range []string{"users", "accounts", "categories", "transactions", "budgets"} {
		if !m.DB().Migrator().HasTable(table) {
			t.Errorf("expected table %s", table)
		}
	}
}
