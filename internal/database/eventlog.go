package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LogEntry is one journaled event
type LogEntry struct {
	ID        int64
	Source    string
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventLog is the append-only event journal shared by every process that
// opens the same database.
type EventLog struct {
	db DBTX
}

// NewEventLog wraps a *sql.DB or *sql.Tx
func NewEventLog(db DBTX) *EventLog {
	return &EventLog{db: db}
}

// Append stores an entry and returns its id
func (l *EventLog) Append(ctx context.Context, e LogEntry) (int64, error) {
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	res, err := l.db.ExecContext(ctx,
		`INSERT INTO event_log (source, type, payload, created_at) VALUES (?, ?, ?, ?)`,
		e.Source, e.Type, string(e.Payload), created.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to append event: %w", err)
	}
	return res.LastInsertId()
}

// Since returns up to limit entries with an id greater than after, oldest
// first.
func (l *EventLog) Since(ctx context.Context, after int64, limit int) ([]LogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, source, type, payload, created_at FROM event_log
		 WHERE id > ? ORDER BY id LIMIT ?`,
		after, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []LogEntry
	for rows.Next() {
		var e LogEntry
		var payload string
		var created sql.NullTime
		if err := rows.Scan(&e.ID, &e.Source, &e.Type, &payload, &created); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Payload = []byte(payload)
		if created.Valid {
			e.CreatedAt = created.Time
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// LastID returns the id of the newest entry, or 0 for an empty journal
func (l *EventLog) LastID(ctx context.Context) (int64, error) {
	var id sql.NullInt64
	err := l.db.QueryRowContext(ctx, `SELECT MAX(id) FROM event_log`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !id.Valid) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read last event id: %w", err)
	}
	return id.Int64, nil
}

// Prune deletes entries created before cutoff and returns how many went
func (l *EventLog) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := l.db.ExecContext(ctx, `DELETE FROM event_log WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune events: %w", err)
	}
	return res.RowsAffected()
}
