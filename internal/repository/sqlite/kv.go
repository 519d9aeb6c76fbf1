package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Storage keys for the persisted collections.
const (
	keyUsers   = "users"
	keySession = "session"
	keyItems   = "items"
)

// getValue reads the raw value stored under key. The second return value is
// false when the key is absent.
func (db *DB) getValue(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := db.SqlDB.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query key %s: %w", key, err)
	}
	return value, true, nil
}

// putValue writes value under key, replacing any previous value in one step.
func (db *DB) putValue(ctx context.Context, key, value string) error {
	_, err := db.SqlDB.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("put key %s: %w", key, err)
	}
	return nil
}

// deleteValue removes key. Deleting an absent key is not an error.
func (db *DB) deleteValue(ctx context.Context, key string) error {
	if _, err := db.SqlDB.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}
