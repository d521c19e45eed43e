package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/urmzd/valetd/pkg/robot"
)

// ConfigEntry is a stored configuration document.
type ConfigEntry struct {
	Key       string
	Value     json.RawMessage
	UpdatedAt time.Time
}

// ConfigEntryStore provides access to configuration documents.
type ConfigEntryStore interface {
	robot.ConfigStore
	Entry(ctx context.Context, key string) (*ConfigEntry, error)
	Keys(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, key string) error
}

// Config returns a ConfigEntryStore for this database.
func (db *DB) Config() ConfigEntryStore {
	return &configEntryStore{db: db}
}

type configEntryStore struct {
	db *DB
}

func (s *configEntryStore) Entry(ctx context.Context, key string) (*ConfigEntry, error) {
	e := &ConfigEntry{Key: key}
	var value, updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT value, updated_at FROM config_entries WHERE key = ?
	`, key).Scan(&value, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", robot.ErrConfigNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	e.Value = json.RawMessage(value)
	e.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return e, nil
}

func (s *configEntryStore) Get(ctx context.Context, key string, dst any) error {
	e, err := s.Entry(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(e.Value, dst); err != nil {
		return fmt.Errorf("decode config %s: %w", key, err)
	}
	return nil
}

func (s *configEntryStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode config %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO config_entries (key, value, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(raw))
	return err
}

func (s *configEntryStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM config_entries ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *configEntryStore) Delete(ctx context.Context, key string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM config_entries WHERE key = ?`, key)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", robot.ErrConfigNotFound, key)
	}
	return nil
}
