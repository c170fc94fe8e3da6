// Package reorder turns pointer-drag gestures into a target stage and
// insertion index, and completes the gesture through a Mover.
package reorder

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/pattyalex/brand-journey-tracker/internal/transition"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
)

// ErrNoDrag indicates a hover or drop arrived with no drag in progress
var ErrNoDrag = errors.New("no drag in progress")

// Rect is the vertical extent of a rendered item
type Rect struct {
	Top    float64
	Height float64
}

// Midpoint returns the vertical center of the rect
func (r Rect) Midpoint() float64 {
	return r.Top + r.Height/2
}

// InsertionIndex computes the insertion slot while hovering the item at
// index i. It depends only on the pointer and the hovered bounds.
func InsertionIndex(pointerY float64, bounds Rect, i int) int {
	if pointerY < bounds.Midpoint() {
		return i
	}
	return i + 1
}

// SlotForIndex converts a desired final index into the insertion slot Drop
// expects. current is the item's index when it stays in the same stage, or
// -1 when it arrives from another stage.
func SlotForIndex(final, current int) int {
	if current >= 0 && final > current {
		return final + 1
	}
	return final
}

// Move is a resolved drop. Index is an insertion slot against the target
// stage's sequence as it was before the move; models.AppendIndex means end.
type Move struct {
	ItemID        types.ItemID
	From          types.StageID
	To            types.StageID
	Index         int
	PlannedChoice transition.PlannedDateChoice
}

// Mover completes a resolved drop against the board
type Mover interface {
	Move(ctx context.Context, m Move) error
}

// DragState is the transient scratch data of one drag gesture. It is never
// persisted and never stored on the board.
type DragState struct {
	ItemID      types.ItemID
	SourceStage types.StageID
	TargetStage types.StageID
	TargetIndex int
	hasTarget   bool
}

// HasTarget reports whether the pointer is over a resolvable drop target
func (d DragState) HasTarget() bool {
	return d.hasTarget
}

// Engine tracks at most one drag gesture at a time
type Engine struct {
	mu     sync.Mutex
	mover  Mover
	active *DragState
}

// NewEngine creates a drag engine that completes drops through mover
func NewEngine(mover Mover) *Engine {
	return &Engine{mover: mover}
}

// Begin starts dragging an item out of its source stage. Any stale gesture
// is discarded first.
func (e *Engine) Begin(id types.ItemID, source types.StageID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = &DragState{ItemID: id, SourceStage: source, TargetIndex: models.AppendIndex}
}

// HoverItem records the pointer over the item at index i in stage
func (e *Engine) HoverItem(stage types.StageID, i int, pointerY float64, bounds Rect) error {
	return e.hover(stage, InsertionIndex(pointerY, bounds, i))
}

// HoverEmpty records the pointer over empty space in stage; the drop lands
// at the end of the sequence.
func (e *Engine) HoverEmpty(stage types.StageID) error {
	return e.hover(stage, models.AppendIndex)
}

// HoverSlot records an explicit insertion slot, as used by keyboard and
// command-line placement.
func (e *Engine) HoverSlot(stage types.StageID, slot int) error {
	return e.hover(stage, slot)
}

// Leave clears the current target when the pointer exits every stage
func (e *Engine) Leave() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return
	}
	e.active.TargetStage = ""
	e.active.TargetIndex = models.AppendIndex
	e.active.hasTarget = false
}

func (e *Engine) hover(stage types.StageID, slot int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return ErrNoDrag
	}
	e.active.TargetStage = stage
	e.active.TargetIndex = slot
	e.active.hasTarget = true
	return nil
}

// State returns a copy of the current drag state
func (e *Engine) State() (DragState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return DragState{}, false
	}
	return *e.active, true
}

// Drop completes the gesture. A drop with no resolvable target is a silent
// no-op. The drag state is cleared on every path, including errors.
func (e *Engine) Drop(ctx context.Context, choice transition.PlannedDateChoice) (bool, error) {
	defer e.End()

	state, ok := e.State()
	if !ok || !state.hasTarget {
		slog.Debug("drop without target ignored", "item_id", state.ItemID)
		return false, nil
	}

	err := e.mover.Move(ctx, Move{
		ItemID:        state.ItemID,
		From:          state.SourceStage,
		To:            state.TargetStage,
		Index:         state.TargetIndex,
		PlannedChoice: choice,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Cancel aborts the gesture, as on drag-cancel
func (e *Engine) Cancel() {
	e.End()
}

// PointerRelease is the global safety net for a pointer released outside
// any drop handler.
func (e *Engine) PointerRelease() {
	e.End()
}

// End clears all drag state. Every exit path funnels through here.
func (e *Engine) End() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = nil
}
