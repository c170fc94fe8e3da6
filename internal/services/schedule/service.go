package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
	calendar "github.com/pattyalex/brand-journey-tracker/internal/schedule"
	"github.com/pattyalex/brand-journey-tracker/internal/session"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
)

// Service defines calendar operations over board items
type Service interface {
	// Read operations
	Index(ctx context.Context) calendar.Index
	Calendar(ctx context.Context, from, to time.Time) ([]calendar.Day, error)

	// Firm scheduling
	Schedule(ctx context.Context, req ScheduleRequest) (models.Item, error)
	Unschedule(ctx context.Context, id types.ItemID) (models.Item, error)

	// Tentative planning
	PlanDate(ctx context.Context, id types.ItemID, date *time.Time) (models.Item, error)

	// Drag to a calendar day
	DropOnDate(ctx context.Context, id types.ItemID, date time.Time) (DropResult, error)
	Reschedule(ctx context.Context, req ScheduleRequest) (models.Item, error)
}

// ScheduleRequest commits an item to a calendar slot.
// EndTime is optional - empty means StartTime plus the configured slot
type ScheduleRequest struct {
	ItemID    types.ItemID
	Date      time.Time
	StartTime string
	EndTime   string
}

// DropResult reports how a calendar drop was handled. For
// calendar.DropNeedsTime nothing was written; the caller confirms a time and
// calls Schedule with the new date.
type DropResult struct {
	Outcome calendar.DropOutcome
	Item    models.Item
	Date    time.Time
}

// service implements Service interface
type service struct {
	store session.Store
	slot  time.Duration
	now   func() time.Time
}

// NewService creates a new scheduling service
func NewService(store session.Store, slot time.Duration) Service {
	if slot <= 0 {
		slot = models.DefaultSlot
	}
	return &service{store: store, slot: slot, now: time.Now}
}

// Index builds the date-keyed view over every board item
func (s *service) Index(ctx context.Context) calendar.Index {
	var ix calendar.Index
	s.store.Read(func(w session.Workspace) { ix = calendar.Build(w.Board.AllItems()) })
	return ix
}

// Calendar returns the populated days between from and to inclusive
func (s *service) Calendar(ctx context.Context, from, to time.Time) ([]calendar.Day, error) {
	if models.DateKey(to) < models.DateKey(from) {
		return nil, ErrInvalidRange
	}
	return s.Index(ctx).Between(from, to), nil
}

// Schedule sets the firm date and time slot and marks the item scheduled.
// The tentative planned date is left as is.
func (s *service) Schedule(ctx context.Context, req ScheduleRequest) (models.Item, error) {
	if req.ItemID.IsZero() {
		return models.Item{}, ErrInvalidItemID
	}
	item, err := s.mutate(ctx, req.ItemID, func(it *models.Item) error {
		return it.SetSchedule(req.Date, req.StartTime, req.EndTime, s.slot)
	})
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to schedule item: %w", err)
	}
	slog.Info("item scheduled",
		"item_id", item.ID,
		"date", models.DateKey(*item.ScheduledDate),
		"start", item.StartTime,
		"end", item.EndTime)
	return item, nil
}

// Unschedule clears the firm slot and reverts the status to to-schedule
func (s *service) Unschedule(ctx context.Context, id types.ItemID) (models.Item, error) {
	if id.IsZero() {
		return models.Item{}, ErrInvalidItemID
	}
	item, err := s.mutate(ctx, id, func(it *models.Item) error {
		it.ClearSchedule()
		return nil
	})
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to unschedule item: %w", err)
	}
	return item, nil
}

// PlanDate sets or, with a nil date, clears the tentative date. Firm
// scheduling fields and the scheduling status are never touched.
func (s *service) PlanDate(ctx context.Context, id types.ItemID, date *time.Time) (models.Item, error) {
	if id.IsZero() {
		return models.Item{}, ErrInvalidItemID
	}
	item, err := s.mutate(ctx, id, func(it *models.Item) error {
		if date == nil {
			it.PlannedDate = nil
			return nil
		}
		day := models.DateOnly(*date)
		it.PlannedDate = &day
		return nil
	})
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to plan item: %w", err)
	}
	return item, nil
}

// DropOnDate handles dragging an item onto a calendar day. A planned-only
// item just moves its planned date; a scheduled item needs a confirmed time
// first, so nothing is written.
func (s *service) DropOnDate(ctx context.Context, id types.ItemID, date time.Time) (DropResult, error) {
	if id.IsZero() {
		return DropResult{}, ErrInvalidItemID
	}

	var item models.Item
	var found bool
	s.store.Read(func(w session.Workspace) { item, _, _, found = w.Board.FindItem(id) })
	if !found {
		return DropResult{}, ErrItemNotFound
	}

	day := models.DateOnly(date)
	switch outcome := calendar.ResolveDrop(item); outcome {
	case calendar.DropNeedsTime:
		return DropResult{Outcome: outcome, Item: item, Date: day}, nil
	case calendar.DropUpdatePlanned:
		updated, err := s.PlanDate(ctx, id, &day)
		if err != nil {
			return DropResult{}, err
		}
		return DropResult{Outcome: outcome, Item: updated, Date: day}, nil
	default:
		return DropResult{Outcome: outcome, Item: item, Date: day}, ErrNotOnCalendar
	}
}

// Reschedule completes a DropNeedsTime drop: the item must already hold a
// firm slot, which moves to the new date and confirmed time.
func (s *service) Reschedule(ctx context.Context, req ScheduleRequest) (models.Item, error) {
	if req.ItemID.IsZero() {
		return models.Item{}, ErrInvalidItemID
	}
	var prev models.Item
	var found bool
	s.store.Read(func(w session.Workspace) { prev, _, _, found = w.Board.FindItem(req.ItemID) })
	if !found {
		return models.Item{}, ErrItemNotFound
	}
	if !prev.IsScheduled() {
		return models.Item{}, ErrNotScheduled
	}

	item, err := s.Schedule(ctx, req)
	if err != nil {
		return models.Item{}, err
	}
	slog.Info("item rescheduled",
		"item_id", item.ID,
		"from", models.DateKey(*prev.ScheduledDate),
		"date", models.DateKey(*item.ScheduledDate))
	return item, nil
}

// mutate applies fn to one item inside a session update
func (s *service) mutate(ctx context.Context, id types.ItemID, fn func(it *models.Item) error) (models.Item, error) {
	var out models.Item
	err := s.store.Update(ctx, func(w *session.Workspace) error {
		it, _, _, ok := w.Board.FindItem(id)
		if !ok {
			return ErrItemNotFound
		}
		if err := fn(&it); err != nil {
			return err
		}
		it.UpdatedAt = s.now()
		out = it
		return w.Board.Replace(it)
	})
	return out, err
}
