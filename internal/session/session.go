// Package session owns the in-memory board for one open view. Every mutation
// runs on a copy, is written through to the store, swapped in, and then
// broadcast so other views reload.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pattyalex/brand-journey-tracker/internal/database"
	"github.com/pattyalex/brand-journey-tracker/internal/events"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
)

// ErrStaleBoard indicates another view wrote the board after this view last
// read it. Nothing was written; the session has reloaded and the caller may
// retry.
var ErrStaleBoard = errors.New("board was changed by another view; reloaded, please retry")

// Workspace is the mutable state handed to an update function
type Workspace struct {
	Board   *models.Board
	Archive []models.Item
}

// Session holds one view's copy of the persisted state
type Session struct {
	mu      sync.Mutex
	store   database.DataStore
	bus     events.EventPublisher
	source  string
	retries int
	snap    database.Snapshot
}

// New creates a session and loads the persisted state
func New(ctx context.Context, store database.DataStore, bus events.EventPublisher, source string, retries int) *Session {
	s := &Session{
		store:   store,
		bus:     bus,
		source:  source,
		retries: retries,
	}
	s.Reload(ctx)
	return s
}

// Source returns the tag this session stamps on its broadcasts
func (s *Session) Source() string {
	return s.source
}

// Reload replaces the in-memory state with the persisted one. A read failure
// is logged and leaves an empty default board.
func (s *Session) Reload(ctx context.Context) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		slog.Warn("failed to load board, using empty board", "error", err)
		snap = database.Snapshot{Board: models.NewBoard(), Archive: []models.Item{}}
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Read runs fn against the current state. fn must not mutate or retain it.
func (s *Session) Read(fn func(w Workspace)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(Workspace{Board: s.snap.Board, Archive: s.snap.Archive})
}

// Board returns a deep copy of the current board
func (s *Session) Board() *models.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Board.Clone()
}

// Archive returns a copy of the current archive entries
func (s *Session) Archive() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Item, len(s.snap.Archive))
	for i, it := range s.snap.Archive {
		out[i] = it.Clone()
	}
	return out
}

// Update applies fn to a copy of the state, sweeps garbage, persists both
// documents and only then swaps the copy in. If fn or the write fails the
// in-memory state is unchanged.
func (s *Session) Update(ctx context.Context, fn func(w *Workspace) error) error {
	s.mu.Lock()

	w := Workspace{Board: s.snap.Board.Clone(), Archive: cloneItems(s.snap.Archive)}
	if err := fn(&w); err != nil {
		s.mu.Unlock()
		return err
	}
	if dropped := w.Board.Sweep(); dropped > 0 {
		slog.Debug("swept placeholder items", "count", dropped)
	}

	next := s.snap
	next.Board = w.Board
	next.Archive = w.Archive
	saved, err := s.store.Save(ctx, next)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, database.ErrVersionConflict) {
			slog.Warn("stale board write rejected", "source", s.source, "error", err)
			s.Reload(ctx)
			return fmt.Errorf("%w: %v", ErrStaleBoard, err)
		}
		return fmt.Errorf("failed to persist board: %w", err)
	}
	s.snap = saved
	s.mu.Unlock()

	s.publish(events.Event{Type: events.EventBoardUpdated, Source: s.source})
	return nil
}

// Publish broadcasts an event stamped with this session's source tag
func (s *Session) Publish(ev events.Event) {
	ev.Source = s.source
	s.publish(ev)
}

func (s *Session) publish(ev events.Event) {
	_ = events.PublishWithRetry(s.bus, ev, s.retries)
}

// Listen reloads whenever another view reports a board update. onReload,
// when non-nil, runs after each reload. Blocks until ctx is done or the bus
// closes.
func (s *Session) Listen(ctx context.Context, onReload func()) error {
	if s.bus == nil {
		<-ctx.Done()
		return ctx.Err()
	}
	ch, err := s.bus.Listen(ctx)
	if err != nil {
		return err
	}
	for ev := range ch {
		if ev.Type != events.EventBoardUpdated || ev.Source == s.source {
			continue
		}
		slog.Debug("reloading board", "source", ev.Source, "sequence", ev.SequenceID)
		s.Reload(ctx)
		if onReload != nil {
			onReload()
		}
	}
	return ctx.Err()
}

func cloneItems(items []models.Item) []models.Item {
	out := make([]models.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
