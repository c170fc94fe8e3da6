package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/types"
)

// Board is the ordered list of all production stages.
// It is the single source of truth for item placement.
type Board struct {
	Stages []Stage
}

// NewBoard creates a board with every fixed stage present and empty
func NewBoard() *Board {
	b := &Board{Stages: make([]Stage, len(pipeline))}
	for i, def := range pipeline {
		b.Stages[i] = Stage{ID: def.id, Title: def.title, Cards: []Item{}}
	}
	return b
}

// MarshalJSON encodes the board as the persisted array of stage records
func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Stages)
}

// UnmarshalJSON decodes a persisted array of stage records and normalizes it
func (b *Board) UnmarshalJSON(data []byte) error {
	var stages []Stage
	if err := json.Unmarshal(data, &stages); err != nil {
		return err
	}
	b.Stages = stages
	b.Normalize()
	return nil
}

// Normalize rebuilds the stage list in fixed pipeline order. Items from
// unknown stages or from the terminal stage are dropped, as are duplicate
// identifiers (first placement wins). Returns the number of items dropped.
func (b *Board) Normalize() int {
	loaded := make(map[types.StageID][]Item, len(b.Stages))
	dropped := 0
	for _, st := range b.Stages {
		if _, ok := StageRank(st.ID); !ok || IsTerminal(st.ID) {
			dropped += len(st.Cards)
			continue
		}
		loaded[st.ID] = append(loaded[st.ID], st.Cards...)
	}

	fresh := NewBoard()
	seen := make(map[types.ItemID]bool)
	for i := range fresh.Stages {
		for _, it := range loaded[fresh.Stages[i].ID] {
			if seen[it.ID] {
				dropped++
				continue
			}
			seen[it.ID] = true
			fresh.Stages[i].Cards = append(fresh.Stages[i].Cards, it)
		}
	}
	b.Stages = fresh.Stages
	return dropped + b.Sweep()
}

// Stage returns a pointer to the stage with the given id
func (b *Board) Stage(id types.StageID) (*Stage, bool) {
	for i := range b.Stages {
		if b.Stages[i].ID == id {
			return &b.Stages[i], true
		}
	}
	return nil, false
}

// ItemsInStage returns a copy of a stage's ordered sequence, skipping
// placeholder items.
func (b *Board) ItemsInStage(id types.StageID) ([]Item, error) {
	st, ok := b.Stage(id)
	if !ok {
		return nil, ErrUnknownStage
	}
	out := make([]Item, 0, len(st.Cards))
	for _, it := range st.Cards {
		if it.IsGarbage() {
			continue
		}
		out = append(out, it.Clone())
	}
	return out, nil
}

// FindItem locates an item, returning a copy, its stage and its index
func (b *Board) FindItem(id types.ItemID) (Item, types.StageID, int, bool) {
	for _, st := range b.Stages {
		for i, it := range st.Cards {
			if it.ID == id {
				return it.Clone(), st.ID, i, true
			}
		}
	}
	return Item{}, "", -1, false
}

// AllItems returns copies of every placed item in board order
func (b *Board) AllItems() []Item {
	var out []Item
	for _, st := range b.Stages {
		for _, it := range st.Cards {
			out = append(out, it.Clone())
		}
	}
	return out
}

// CreateItem appends a new item with the given title to a stage
func (b *Board) CreateItem(stageID types.StageID, title string, now time.Time) (Item, error) {
	if strings.TrimSpace(title) == "" {
		return Item{}, ErrEmptyTitle
	}
	it := NewItem(title, now)
	if err := b.Insert(stageID, AppendIndex, it); err != nil {
		return Item{}, err
	}
	it.StageID = stageID
	return it, nil
}

// Insert places item into a stage at index. Negative or out-of-range indexes
// are clamped to the end of the sequence.
func (b *Board) Insert(stageID types.StageID, index int, item Item) error {
	if IsTerminal(stageID) {
		return ErrTerminalStage
	}
	st, ok := b.Stage(stageID)
	if !ok {
		return ErrUnknownStage
	}
	if _, _, _, found := b.FindItem(item.ID); found {
		return ErrDuplicateItem
	}
	if index < 0 || index > len(st.Cards) {
		index = len(st.Cards)
	}
	item.StageID = stageID
	st.Cards = append(st.Cards, Item{})
	copy(st.Cards[index+1:], st.Cards[index:])
	st.Cards[index] = item
	return nil
}

// Remove takes an item out of whichever stage holds it
func (b *Board) Remove(id types.ItemID) (Item, types.StageID, int, error) {
	for s := range b.Stages {
		st := &b.Stages[s]
		for i, it := range st.Cards {
			if it.ID != id {
				continue
			}
			st.Cards = append(st.Cards[:i], st.Cards[i+1:]...)
			return it, st.ID, i, nil
		}
	}
	return Item{}, "", -1, ErrItemNotFound
}

// Replace overwrites an item in place, keeping its stage and position
func (b *Board) Replace(item Item) error {
	for s := range b.Stages {
		st := &b.Stages[s]
		for i := range st.Cards {
			if st.Cards[i].ID == item.ID {
				item.StageID = st.ID
				st.Cards[i] = item
				return nil
			}
		}
	}
	return ErrItemNotFound
}

// Reorder moves the item at index from to insertion slot within the same
// stage. slot is expressed against the sequence before removal (0..len);
// when it lies after the original position it is shifted down by one so the
// item lands in the slot the user pointed at. Returns the final index.
func (b *Board) Reorder(stageID types.StageID, from, slot int) (int, error) {
	st, ok := b.Stage(stageID)
	if !ok {
		return -1, ErrUnknownStage
	}
	n := len(st.Cards)
	if from < 0 || from >= n {
		return -1, ErrInvalidIndex
	}
	if slot < 0 || slot > n {
		slot = n
	}
	target := slot
	if target > from {
		target--
	}
	if target == from {
		return from, nil
	}

	item := st.Cards[from]
	st.Cards = append(st.Cards[:from], st.Cards[from+1:]...)
	st.Cards = append(st.Cards, Item{})
	copy(st.Cards[target+1:], st.Cards[target:])
	st.Cards[target] = item
	return target, nil
}

// Sweep drops placeholder items and recomputes every item's derived StageID.
// Returns the number of items dropped.
func (b *Board) Sweep() int {
	dropped := 0
	for s := range b.Stages {
		st := &b.Stages[s]
		kept := st.Cards[:0]
		for _, it := range st.Cards {
			if it.IsGarbage() {
				dropped++
				continue
			}
			it.StageID = st.ID
			kept = append(kept, it)
		}
		st.Cards = kept
	}
	return dropped
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	out := &Board{Stages: make([]Stage, len(b.Stages))}
	for i, st := range b.Stages {
		cards := make([]Item, len(st.Cards))
		for j, it := range st.Cards {
			cards[j] = it.Clone()
		}
		out.Stages[i] = Stage{ID: st.ID, Title: st.Title, Cards: cards}
	}
	return out
}

// Count returns the total number of placed items
func (b *Board) Count() int {
	n := 0
	for _, st := range b.Stages {
		n += len(st.Cards)
	}
	return n
}
