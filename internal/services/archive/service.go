package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/events"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/pattyalex/brand-journey-tracker/internal/session"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
)

// Service defines the archive operations
type Service interface {
	// Read operations
	List(ctx context.Context) []models.Item
	Get(ctx context.Context, entryID types.ItemID) (models.Item, error)

	// Leaving the board
	Archive(ctx context.Context, itemID types.ItemID) (models.Item, error)
	ArchiveAndRemove(ctx context.Context, itemID types.ItemID) (models.Item, error)
	Delete(ctx context.Context, req DeleteRequest) error

	// Returning to the board
	Restore(ctx context.Context, req RestoreRequest) (models.Item, error)
	Repurpose(ctx context.Context, entryID types.ItemID) (models.Item, error)

	// Cross-view events
	RequestOpenPanel(ctx context.Context)
	HandleEvent(ctx context.Context, ev events.Event) error
	Run(ctx context.Context) error
}

// DeleteRequest removes an item from the board without archiving it.
// Confirm must be set; the delete cannot be undone.
type DeleteRequest struct {
	ItemID  types.ItemID
	Confirm bool
}

// RestoreRequest moves an archive entry back onto the board
type RestoreRequest struct {
	EntryID types.ItemID
	StageID types.StageID // Optional: empty means the first stage
}

// service implements Service interface
type service struct {
	store session.Store
	now   func() time.Time
}

// NewService creates a new archive service
func NewService(store session.Store) Service {
	return &service{store: store, now: time.Now}
}

// List returns archive entries, most recently archived first
func (s *service) List(ctx context.Context) []models.Item {
	var out []models.Item
	s.store.Read(func(w session.Workspace) {
		out = make([]models.Item, len(w.Archive))
		for i, it := range w.Archive {
			out[i] = it.Clone()
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return archivedAt(out[i]).After(archivedAt(out[j]))
	})
	return out
}

// Get returns a single archive entry
func (s *service) Get(ctx context.Context, entryID types.ItemID) (models.Item, error) {
	var out models.Item
	var found bool
	s.store.Read(func(w session.Workspace) {
		if i, ok := w.FindArchiveEntry(entryID); ok {
			out, found = w.Archive[i].Clone(), true
		}
	})
	if !found {
		return models.Item{}, ErrEntryNotFound
	}
	return out, nil
}

// Archive records a copy of the item and leaves the original on the board
func (s *service) Archive(ctx context.Context, itemID types.ItemID) (models.Item, error) {
	return s.archive(ctx, itemID, false)
}

// ArchiveAndRemove records a copy of the item, then deletes the original
func (s *service) ArchiveAndRemove(ctx context.Context, itemID types.ItemID) (models.Item, error) {
	return s.archive(ctx, itemID, true)
}

func (s *service) archive(ctx context.Context, itemID types.ItemID, remove bool) (models.Item, error) {
	if itemID.IsZero() {
		return models.Item{}, ErrInvalidItemID
	}

	var entry models.Item
	err := s.store.Update(ctx, func(w *session.Workspace) error {
		it, _, _, ok := w.Board.FindItem(itemID)
		if !ok {
			return ErrItemNotFound
		}
		entry = w.AddArchiveEntry(it, s.now())
		if remove {
			_, _, _, err := w.Board.Remove(itemID)
			return err
		}
		return nil
	})
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to archive item: %w", err)
	}

	slog.Info("item archived", "item_id", itemID, "entry_id", entry.ID, "removed", remove)
	return entry, nil
}

// Delete permanently removes an item without creating an archive entry
func (s *service) Delete(ctx context.Context, req DeleteRequest) error {
	if req.ItemID.IsZero() {
		return ErrInvalidItemID
	}
	if !req.Confirm {
		return ErrConfirmationRequired
	}

	err := s.store.Update(ctx, func(w *session.Workspace) error {
		_, _, _, err := w.Board.Remove(req.ItemID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	slog.Info("item permanently deleted", "item_id", req.ItemID)
	return nil
}

// Restore places an archive entry at the head of a stage as a new item with
// a fresh identifier. The firm schedule is dropped and the entry leaves the
// archive. Restoring into the first stage is a new placement, not a backward
// transition, so it is allowed.
func (s *service) Restore(ctx context.Context, req RestoreRequest) (models.Item, error) {
	stageID := req.StageID
	if stageID == "" {
		stageID = models.FirstStage()
	}
	if models.IsTerminal(stageID) {
		return models.Item{}, ErrTerminalStage
	}
	if _, ok := models.StageRank(stageID); !ok {
		return models.Item{}, ErrUnknownStage
	}

	var restored models.Item
	err := s.store.Update(ctx, func(w *session.Workspace) error {
		entry, ok := w.RemoveArchiveEntry(req.EntryID)
		if !ok {
			return ErrEntryNotFound
		}
		now := s.now()
		it := entry.Clone()
		it.ID = models.NewItemID()
		it.ArchivedAt = nil
		if it.IsScheduled() || it.SchedulingStatus == models.SchedulingScheduled {
			it.ClearSchedule()
		}
		it.UpdatedAt = now
		if err := w.Board.Insert(stageID, 0, it); err != nil {
			return err
		}
		restored, _, _, _ = w.Board.FindItem(it.ID)
		return nil
	})
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to restore entry: %w", err)
	}

	slog.Info("archive entry restored", "entry_id", req.EntryID, "item_id", restored.ID, "stage", stageID)
	return restored, nil
}

// Repurpose starts a new production cycle from an archive entry: its content
// is copied into a new item at the head of the first stage. The entry stays
// in the archive.
func (s *service) Repurpose(ctx context.Context, entryID types.ItemID) (models.Item, error) {
	var created models.Item
	err := s.store.Update(ctx, func(w *session.Workspace) error {
		i, ok := w.FindArchiveEntry(entryID)
		if !ok {
			return ErrEntryNotFound
		}
		it := repurposed(w.Archive[i], s.now())
		if err := w.Board.Insert(models.FirstStage(), 0, it); err != nil {
			return err
		}
		created, _, _, _ = w.Board.FindItem(it.ID)
		return nil
	})
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to repurpose entry: %w", err)
	}

	slog.Info("archive entry repurposed", "entry_id", entryID, "item_id", created.ID)
	return created, nil
}

// repurposed copies content fields into a fresh item. Production progress
// and every scheduling field start over.
func repurposed(entry models.Item, now time.Time) models.Item {
	src := entry.Clone()
	it := models.NewItem(src.Title, now)
	it.Hook = src.Hook
	it.Script = src.Script
	it.Notes = src.Notes
	it.Platforms = src.Platforms
	it.Formats = src.Formats
	it.ShootLocation = src.ShootLocation
	it.ShootProps = src.ShootProps
	it.Shots = src.Shots
	for i := range it.Shots {
		it.Shots[i].Done = false
	}
	it.EditChecklist = src.EditChecklist
	for i := range it.EditChecklist {
		it.EditChecklist[i].Checked = false
	}
	return it
}

// RequestOpenPanel asks the views to show the archive panel
func (s *service) RequestOpenPanel(ctx context.Context) {
	s.store.Publish(events.Event{Type: events.EventOpenArchive})
}

// HandleEvent serves archive_item requests. An item still on the board is
// archived and removed; an item that is not is recorded as an entry only.
func (s *service) HandleEvent(ctx context.Context, ev events.Event) error {
	if ev.Type != events.EventArchiveItem {
		return nil
	}
	if ev.Item == nil {
		return ErrMissingPayload
	}

	_, err := s.ArchiveAndRemove(ctx, ev.Item.ID)
	if err == nil || !errors.Is(err, ErrItemNotFound) {
		return err
	}

	payload := ev.Item.Clone()
	if payload.IsGarbage() {
		return ErrMissingPayload
	}
	return s.store.Update(ctx, func(w *session.Workspace) error {
		w.AddArchiveEntry(payload, s.now())
		return nil
	})
}

// Run serves archive events until ctx is done. Only requests raised by this
// view, or carrying no source, are handled so views sharing a bus never
// archive the same item twice.
func (s *service) Run(ctx context.Context) error {
	ch, err := s.store.Events(ctx)
	if err != nil {
		return err
	}
	for ev := range ch {
		if ev.Source != "" && ev.Source != s.store.Source() {
			continue
		}
		if err := s.HandleEvent(ctx, ev); err != nil {
			slog.Warn("failed to handle archive event", "event_type", ev.Type, "error", err)
		}
	}
	return ctx.Err()
}

func archivedAt(it models.Item) time.Time {
	if it.ArchivedAt == nil {
		return time.Time{}
	}
	return *it.ArchivedAt
}
