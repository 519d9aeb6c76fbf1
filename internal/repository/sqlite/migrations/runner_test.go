package migrations_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/msomdec/campus-market/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRun_AppliesAllMigrations(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The kv table must exist afterwards.
	if _, err := db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES ('probe', '[]')`); err != nil {
		t.Fatalf("kv table not usable: %v", err)
	}
}

func TestRun_RecordsAppliedMigrations(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count == 0 {
		t.Fatal("expected at least one recorded migration")
	}

	// A second run must not re-apply anything.
	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	var after int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&after); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if after != count {
		t.Fatalf("expected %d migrations, got %d after rerun", count, after)
	}
}
