package session

import (
	"context"
	"fmt"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/events"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
)

// Store is the view of a session the services depend on
type Store interface {
	Source() string
	Read(fn func(w Workspace))
	Update(ctx context.Context, fn func(w *Workspace) error) error
	Publish(ev events.Event)
	Events(ctx context.Context) (<-chan events.Event, error)
}

var _ Store = (*Session)(nil)

// Events subscribes to the session's bus until ctx is done
func (s *Session) Events(ctx context.Context) (<-chan events.Event, error) {
	if s.bus == nil {
		return nil, events.ErrBusClosed
	}
	return s.bus.Listen(ctx)
}

// ArchiveEntryID derives the identifier of an archive copy of id
func ArchiveEntryID(id types.ItemID, at time.Time) types.ItemID {
	return types.ItemID(fmt.Sprintf("%s-archived-%d", id, at.UnixMilli()))
}

// AddArchiveEntry appends a copy of it to the archive, stamped with now.
// The original item is not touched. Returns the stored entry.
func (w *Workspace) AddArchiveEntry(it models.Item, now time.Time) models.Item {
	entry := it.Clone()
	at := now
	entry.ID = ArchiveEntryID(it.ID, at)
	// Two copies of one item inside the same millisecond get distinct ids
	for {
		if _, ok := w.FindArchiveEntry(entry.ID); !ok {
			break
		}
		at = at.Add(time.Millisecond)
		entry.ID = ArchiveEntryID(it.ID, at)
	}
	stamp := now
	entry.ArchivedAt = &stamp
	entry.UpdatedAt = now
	w.Archive = append(w.Archive, entry)
	return entry.Clone()
}

// FindArchiveEntry returns the index of an archive entry
func (w *Workspace) FindArchiveEntry(id types.ItemID) (int, bool) {
	for i, it := range w.Archive {
		if it.ID == id {
			return i, true
		}
	}
	return -1, false
}

// RemoveArchiveEntry takes an entry out of the archive
func (w *Workspace) RemoveArchiveEntry(id types.ItemID) (models.Item, bool) {
	i, ok := w.FindArchiveEntry(id)
	if !ok {
		return models.Item{}, false
	}
	entry := w.Archive[i]
	w.Archive = append(w.Archive[:i], w.Archive[i+1:]...)
	return entry, true
}
