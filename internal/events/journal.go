package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/database"
)

// DefaultPollInterval is how often a following view checks the journal
const DefaultPollInterval = 500 * time.Millisecond

// JournalRetention is how long journaled events are kept
const JournalRetention = 24 * time.Hour

// Journal persists events where other processes can read them
type Journal interface {
	Append(ctx context.Context, e database.LogEntry) (int64, error)
	Since(ctx context.Context, after int64, limit int) ([]database.LogEntry, error)
	LastID(ctx context.Context) (int64, error)
}

var _ Journal = (*database.EventLog)(nil)

// JournaledBus is a Bus whose sends are also written to a Journal, so views
// in other processes sharing the database see them.
type JournaledBus struct {
	*Bus
	journal Journal
}

// NewJournaledBus wraps bus so every send is journaled first
func NewJournaledBus(bus *Bus, journal Journal) *JournaledBus {
	return &JournaledBus{Bus: bus, journal: journal}
}

var _ EventPublisher = (*JournaledBus)(nil)

// SendEvent journals the event, then fans it out locally. A journal failure
// returns ErrJournalWrite without delivering anything, so a retry never
// delivers twice.
func (j *JournaledBus) SendEvent(event Event) error {
	if j.Closed() {
		return ErrBusClosed
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	_, err = j.journal.Append(context.Background(), database.LogEntry{
		Source:    event.Source,
		Type:      string(event.Type),
		Payload:   payload,
		CreatedAt: event.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrJournalWrite, err)
	}
	return j.Bus.SendEvent(event)
}

// Follow replays events journaled by other views onto the local bus until
// ctx is done. Only entries written after Follow starts are replayed, and
// entries stamped with source are skipped since they were delivered locally.
func (j *JournaledBus) Follow(ctx context.Context, source string, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	cursor, err := j.journal.LastID(ctx)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		entries, err := j.journal.Since(ctx, cursor, 100)
		if err != nil {
			slog.Warn("failed to read event journal", "error", err)
			continue
		}
		for _, e := range entries {
			cursor = e.ID
			if e.Source == source {
				continue
			}
			var ev Event
			if err := json.Unmarshal(e.Payload, &ev); err != nil {
				slog.Warn("skipping undecodable journal entry", "entry_id", e.ID, "error", err)
				continue
			}
			if err := j.Bus.SendEvent(ev); errors.Is(err, ErrBusClosed) {
				return nil
			}
		}
	}
}
