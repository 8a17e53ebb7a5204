package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// SettingsStore handles the key/value settings table
type SettingsStore struct {
	db *sql.DB
}

// NewSettingsStore creates a new SettingsStore
func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get retrieves the value stored under key, or nil if there is none
func (s *SettingsStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting %s: %w", key, err)
	}

	return json.RawMessage(value), nil
}

// Upsert stores value under key and returns the value as persisted
func (s *SettingsStore) Upsert(ctx context.Context, key string, value json.RawMessage) (json.RawMessage, error) {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
		RETURNING value
	`

	var stored []byte
	if err := s.db.QueryRowContext(ctx, query, key, string(value)).Scan(&stored); err != nil {
		return nil, fmt.Errorf("failed to upsert setting %s: %w", key, err)
	}

	return json.RawMessage(stored), nil
}
