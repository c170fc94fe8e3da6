package board

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/pattyalex/brand-journey-tracker/internal/reorder"
	"github.com/pattyalex/brand-journey-tracker/internal/session"
	"github.com/pattyalex/brand-journey-tracker/internal/transition"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
)

// Service defines all board-related business operations
type Service interface {
	// Read operations
	GetBoard(ctx context.Context) *models.Board
	GetItemsInStage(ctx context.Context, stageID types.StageID) ([]models.Item, error)
	FindItem(ctx context.Context, id types.ItemID) (Location, error)

	// Write operations
	CreateItem(ctx context.Context, req CreateItemRequest) (models.Item, error)
	UpdateItem(ctx context.Context, req UpdateItemRequest) (models.Item, error)

	// Item movements
	MoveItem(ctx context.Context, req MoveItemRequest) (MoveResult, error)

	// reorder.Mover, so a drag engine can complete drops
	Move(ctx context.Context, m reorder.Move) error
}

// CreateItemRequest encapsulates all data needed to create an item
type CreateItemRequest struct {
	Title   string
	StageID types.StageID // Optional: empty means the first stage
	Patch   models.ItemPatch
}

// UpdateItemRequest encapsulates all data needed to update an item.
// Patch fields with pointers are optional - nil means don't update
type UpdateItemRequest struct {
	ItemID types.ItemID
	Patch  models.ItemPatch
}

// MoveItemRequest places an item in a stage. Index is an insertion slot
// against the target sequence before the move; models.AppendIndex means the
// end. PlannedChoice answers the planned-date conflict when entering the
// scheduling stage.
type MoveItemRequest struct {
	ItemID        types.ItemID
	ToStage       types.StageID
	Index         int
	PlannedChoice transition.PlannedDateChoice
}

// MoveResult reports where a moved item ended up
type MoveResult struct {
	Item     models.Item
	From     types.StageID
	Stage    types.StageID
	Index    int
	Archived bool // Entered the terminal stage and now lives in the archive
}

// Location is an item plus its position on the board
type Location struct {
	Item  models.Item
	Stage types.StageID
	Index int
}

// service implements Service interface
type service struct {
	store  session.Store
	policy transition.Policy
	now    func() time.Time
}

// NewService creates a new board service
func NewService(store session.Store, policy transition.Policy) Service {
	return &service{
		store:  store,
		policy: policy,
		now:    time.Now,
	}
}

// GetBoard returns a copy of the whole board
func (s *service) GetBoard(ctx context.Context) *models.Board {
	var b *models.Board
	s.store.Read(func(w session.Workspace) { b = w.Board.Clone() })
	return b
}

// GetItemsInStage returns a stage's ordered items
func (s *service) GetItemsInStage(ctx context.Context, stageID types.StageID) ([]models.Item, error) {
	var items []models.Item
	var err error
	s.store.Read(func(w session.Workspace) { items, err = w.Board.ItemsInStage(stageID) })
	return items, err
}

// FindItem locates an item on the board
func (s *service) FindItem(ctx context.Context, id types.ItemID) (Location, error) {
	if id.IsZero() {
		return Location{}, ErrInvalidItemID
	}
	var loc Location
	var found bool
	s.store.Read(func(w session.Workspace) {
		loc.Item, loc.Stage, loc.Index, found = w.Board.FindItem(id)
	})
	if !found {
		return Location{}, ErrItemNotFound
	}
	return loc, nil
}

// CreateItem handles item creation with validation
func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (models.Item, error) {
	if err := validateTitle(req.Title); err != nil {
		return models.Item{}, err
	}
	if req.Patch.Title != nil {
		if err := validateTitle(*req.Patch.Title); err != nil {
			return models.Item{}, err
		}
	}
	stageID := req.StageID
	if stageID == "" {
		stageID = models.FirstStage()
	}

	var created models.Item
	err := s.store.Update(ctx, func(w *session.Workspace) error {
		now := s.now()
		it, err := w.Board.CreateItem(stageID, req.Title, now)
		if err != nil {
			return err
		}
		if !req.Patch.IsEmpty() {
			req.Patch.Apply(&it, now)
			if err := w.Board.Replace(it); err != nil {
				return err
			}
		}
		created = it
		return nil
	})
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	slog.Info("item created", "item_id", created.ID, "stage", stageID)
	return created, nil
}

// UpdateItem applies a field patch to an item in place
func (s *service) UpdateItem(ctx context.Context, req UpdateItemRequest) (models.Item, error) {
	if req.ItemID.IsZero() {
		return models.Item{}, ErrInvalidItemID
	}
	if req.Patch.IsEmpty() {
		return models.Item{}, ErrEmptyPatch
	}
	if req.Patch.Title != nil {
		if err := validateTitle(*req.Patch.Title); err != nil {
			return models.Item{}, err
		}
		trimmed := strings.TrimSpace(*req.Patch.Title)
		req.Patch.Title = &trimmed
	}
	if req.Patch.ProductionStatus != nil && *req.Patch.ProductionStatus != "" &&
		!models.IsProductionStatus(*req.Patch.ProductionStatus) {
		return models.Item{}, ErrInvalidStatus
	}

	var updated models.Item
	err := s.store.Update(ctx, func(w *session.Workspace) error {
		it, _, _, ok := w.Board.FindItem(req.ItemID)
		if !ok {
			return ErrItemNotFound
		}
		req.Patch.Apply(&it, s.now())
		updated = it
		return w.Board.Replace(it)
	})
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to update item: %w", err)
	}
	return updated, nil
}

// MoveItem reorders within a stage or transitions to another stage. A
// transition into the terminal stage archives the item and removes it from
// the board.
func (s *service) MoveItem(ctx context.Context, req MoveItemRequest) (MoveResult, error) {
	if req.ItemID.IsZero() {
		return MoveResult{}, ErrInvalidItemID
	}

	var res MoveResult
	err := s.store.Update(ctx, func(w *session.Workspace) error {
		it, from, idx, ok := w.Board.FindItem(req.ItemID)
		if !ok {
			return ErrItemNotFound
		}
		res.From = from

		if from == req.ToStage {
			final, err := w.Board.Reorder(from, idx, req.Index)
			if err != nil {
				return err
			}
			res.Item, res.Stage, res.Index = it, from, final
			return nil
		}

		now := s.now()
		stamped, route, err := s.policy.Apply(it, from, req.ToStage, req.PlannedChoice, now)
		if err != nil {
			return err
		}
		if _, _, _, err := w.Board.Remove(it.ID); err != nil {
			return err
		}

		if route == transition.RouteArchive {
			res.Item = w.AddArchiveEntry(stamped, now)
			res.Stage, res.Index, res.Archived = req.ToStage, -1, true
			return nil
		}

		if err := w.Board.Insert(req.ToStage, req.Index, stamped); err != nil {
			return err
		}
		res.Item, res.Stage, res.Index, _ = w.Board.FindItem(stamped.ID)
		return nil
	})
	if err != nil {
		return MoveResult{}, err
	}

	slog.Info("item moved",
		"item_id", req.ItemID,
		"from", res.From,
		"stage", res.Stage,
		"index", res.Index,
		"archived", res.Archived)
	return res, nil
}

// Move completes a drag-engine drop
func (s *service) Move(ctx context.Context, m reorder.Move) error {
	_, err := s.MoveItem(ctx, MoveItemRequest{
		ItemID:        m.ItemID,
		ToStage:       m.To,
		Index:         m.Index,
		PlannedChoice: m.PlannedChoice,
	})
	return err
}

func validateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrEmptyTitle
	}
	if len(trimmed) > models.MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}
