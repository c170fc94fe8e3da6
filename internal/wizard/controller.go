package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/classifier"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	boardservice "github.com/pattyalex/brand-journey-tracker/internal/services/board"
	scheduleservice "github.com/pattyalex/brand-journey-tracker/internal/services/schedule"
	"github.com/pattyalex/brand-journey-tracker/internal/transition"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
)

// CloseResult reports where the item landed when the wizard closed
type CloseResult struct {
	Item  models.Item
	From  types.StageID
	Stage types.StageID
	Moved bool
}

// Controller is the wizard state machine for a single view
type Controller struct {
	mu       sync.Mutex
	boards   boardservice.Service
	calendar scheduleservice.Service
	state    State
}

// New creates a closed wizard
func New(boards boardservice.Service, calendar scheduleservice.Service) *Controller {
	return &Controller{boards: boards, calendar: calendar}
}

// State returns a copy of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open starts editing an item at its first incomplete step
func (c *Controller) Open(ctx context.Context, id types.ItemID) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.IsOpen() {
		return c.state, ErrAlreadyOpen
	}

	loc, err := c.boards.FindItem(ctx, id)
	if err != nil {
		return c.state, err
	}
	step := classifier.FirstIncompleteStep(loc.Item)
	c.state = State{Mode: ModeEditing, Step: step, ItemID: id, Draft: hydrate(step, loc.Item)}

	slog.Debug("wizard opened", "item_id", id, "step", step, "stage", loc.Stage)
	return c.state, nil
}

// Edit changes the active step's draft in memory. Nothing is written until
// the wizard navigates or closes.
func (c *Controller) Edit(fn func(d *Draft)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.IsOpen() {
		return ErrNotOpen
	}
	fn(&c.state.Draft)
	return nil
}

// Navigate flushes the active step's fields plus any overrides, writes the
// item back, then moves to step and hydrates it from the merged item. On
// error the wizard stays on the current step with its draft intact.
func (c *Controller) Navigate(ctx context.Context, step types.StageID, overrides *models.ItemPatch) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.IsOpen() {
		return c.state, ErrNotOpen
	}
	if _, ok := models.StepNumber(step); !ok {
		return c.state, ErrInvalidStep
	}

	it, err := c.flush(ctx, overrides)
	if err != nil {
		return c.state, err
	}
	c.state.Step = step
	c.state.Draft = hydrate(step, it)
	return c.state, nil
}

// NavigateNumber is Navigate addressed by 1-based step number
func (c *Controller) NavigateNumber(ctx context.Context, n int, overrides *models.ItemPatch) (State, error) {
	step, ok := models.StageForStep(n)
	if !ok {
		return c.State(), ErrInvalidStep
	}
	return c.Navigate(ctx, step, overrides)
}

// Close flushes the active step, classifies the merged item and relocates it
// into the classified stage whatever step was open. A planned-date conflict
// keeps the wizard open so the caller can close again with a choice; any
// other relocation failure, such as the forward-only rule, closes the wizard
// and leaves the item where it was.
func (c *Controller) Close(ctx context.Context, choice transition.PlannedDateChoice) (CloseResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.IsOpen() {
		return CloseResult{}, ErrNotOpen
	}

	it, err := c.flush(ctx, nil)
	if err != nil {
		return CloseResult{}, err
	}
	loc, err := c.boards.FindItem(ctx, it.ID)
	if err != nil {
		c.state = State{}
		return CloseResult{}, err
	}

	res := CloseResult{Item: loc.Item, From: loc.Stage, Stage: loc.Stage}
	target := classifier.Classify(loc.Item)
	if target == loc.Stage {
		c.state = State{}
		return res, nil
	}

	moved, err := c.boards.MoveItem(ctx, boardservice.MoveItemRequest{
		ItemID:        it.ID,
		ToStage:       target,
		Index:         models.AppendIndex,
		PlannedChoice: choice,
	})
	if errors.Is(err, transition.ErrPlannedDateChoiceRequired) {
		// Re-hydrate so the draft matches what was just flushed
		c.state.Draft = hydrate(c.state.Step, loc.Item)
		return res, err
	}
	c.state = State{}
	if err != nil {
		slog.Warn("wizard could not relocate item",
			"item_id", it.ID,
			"stage", loc.Stage,
			"classified", target,
			"error", err)
		return res, err
	}

	res.Item, res.Stage, res.Moved = moved.Item, moved.Stage, true
	slog.Info("wizard relocated item", "item_id", it.ID, "from", loc.Stage, "stage", moved.Stage)
	return res, nil
}

// Discard closes the wizard without writing the active draft
func (c *Controller) Discard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{}
}

// flush writes the active step's owned fields merged with overrides and
// returns the resulting item. Caller holds c.mu.
func (c *Controller) flush(ctx context.Context, overrides *models.ItemPatch) (models.Item, error) {
	id, step, d := c.state.ItemID, c.state.Step, c.state.Draft
	if step == types.StageScheduling && d.ScheduledDate != nil && d.StartTime == "" {
		return models.Item{}, ErrStartTimeRequired
	}

	p := d.patch(step)
	if overrides != nil {
		p = merge(p, *overrides)
	}
	if !p.IsEmpty() {
		if _, err := c.boards.UpdateItem(ctx, boardservice.UpdateItemRequest{ItemID: id, Patch: p}); err != nil {
			return models.Item{}, fmt.Errorf("failed to save %s step: %w", step, err)
		}
	}

	loc, err := c.boards.FindItem(ctx, id)
	if err != nil {
		return models.Item{}, err
	}
	it := loc.Item

	switch step {
	case types.StageIdeation:
		if !sameDay(it.PlannedDate, d.PlannedDate) {
			if it, err = c.calendar.PlanDate(ctx, id, d.PlannedDate); err != nil {
				return models.Item{}, err
			}
		}
	case types.StageScheduling:
		switch {
		case d.ScheduledDate != nil:
			if !sameDay(it.ScheduledDate, d.ScheduledDate) || it.StartTime != d.StartTime || it.EndTime != d.EndTime {
				it, err = c.calendar.Schedule(ctx, scheduleservice.ScheduleRequest{
					ItemID:    id,
					Date:      *d.ScheduledDate,
					StartTime: d.StartTime,
					EndTime:   d.EndTime,
				})
				if err != nil {
					return models.Item{}, err
				}
			}
		case d.ScheduledDate == nil && it.IsScheduled():
			if it, err = c.calendar.Unschedule(ctx, id); err != nil {
				return models.Item{}, err
			}
		}
	}
	return it, nil
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return models.DateKey(*a) == models.DateKey(*b)
}
