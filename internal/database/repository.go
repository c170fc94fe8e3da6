package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KVRepo is the sqlite implementation of KVRepository
type KVRepo struct {
	db DBTX
}

// NewKVRepo wraps a *sql.DB or *sql.Tx
func NewKVRepo(db DBTX) *KVRepo {
	return &KVRepo{db: db}
}

var _ KVRepository = (*KVRepo)(nil)

// Get returns the stored record for key
func (r *KVRepo) Get(ctx context.Context, key string) (Record, error) {
	rec := Record{Key: key}
	var value string
	var updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT value, version, updated_at FROM kv_store WHERE key = ?`, key,
	).Scan(&value, &rec.Version, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	rec.Value = []byte(value)
	if updatedAt.Valid {
		rec.UpdatedAt = updatedAt.Time
	}
	return rec, nil
}

// Put writes value under key with a compare-and-swap on version. Returns the
// new version.
func (r *KVRepo) Put(ctx context.Context, key string, value []byte, expectedVersion int64) (int64, error) {
	now := time.Now().UTC()

	if expectedVersion == 0 {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO kv_store (key, value, version, updated_at) VALUES (?, ?, 1, ?)
			 ON CONFLICT(key) DO NOTHING`,
			key, string(value), now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to create key %s: %w", key, err)
		}
		if err := requireOneRow(res, key); err != nil {
			return 0, err
		}
		return 1, nil
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE kv_store SET value = ?, version = version + 1, updated_at = ?
		 WHERE key = ? AND version = ?`,
		string(value), now, key, expectedVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to write key %s: %w", key, err)
	}
	if err := requireOneRow(res, key); err != nil {
		return 0, err
	}
	return expectedVersion + 1, nil
}

// requireOneRow maps a write that touched nothing to ErrVersionConflict
func requireOneRow(res sql.Result, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check write of key %s: %w", key, err)
	}
	if n == 0 {
		return ErrVersionConflict
	}
	return nil
}

// Delete removes a key; deleting a missing key is not an error
func (r *KVRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
