package models

import (
	"strings"

	"github.com/pattyalex/brand-journey-tracker/internal/types"
)

// Stage represents one column of the production board.
// Cards order is meaningful: it is the visual / priority order.
type Stage struct {
	ID    types.StageID `json:"id"`
	Title string        `json:"title"`
	Cards []Item        `json:"cards"`
}

// stageDef pairs a fixed stage identifier with its display label
type stageDef struct {
	id    types.StageID
	title string
}

// pipeline is the fixed, totally ordered set of stages. Index order defines
// "forward" and "backward" for transitions.
var pipeline = []stageDef{
	{types.StageIdeation, "Ideate"},
	{types.StageScripting, "Script & Concept"},
	{types.StageShooting, "To Film"},
	{types.StageEditing, "To Edit"},
	{types.StageScheduling, "To Schedule"},
	{types.StagePosted, "Posted"},
}

// StageOrder returns all stage identifiers in pipeline order
func StageOrder() []types.StageID {
	ids := make([]types.StageID, len(pipeline))
	for i, def := range pipeline {
		ids[i] = def.id
	}
	return ids
}

// StageRank returns the zero-based pipeline position of a stage
func StageRank(id types.StageID) (int, bool) {
	for i, def := range pipeline {
		if def.id == id {
			return i, true
		}
	}
	return -1, false
}

// StageTitle returns the display label for a stage, or the raw id if unknown
func StageTitle(id types.StageID) string {
	for _, def := range pipeline {
		if def.id == id {
			return def.title
		}
	}
	return string(id)
}

// FirstStage is the ideation stage; items may never return to it
func FirstStage() types.StageID {
	return pipeline[0].id
}

// TerminalStage is the posted stage; entering it is an archival event
func TerminalStage() types.StageID {
	return pipeline[len(pipeline)-1].id
}

// IsTerminal reports whether the stage is the terminal posted stage
func IsTerminal(id types.StageID) bool {
	return id == TerminalStage()
}

// ParseStageID resolves a stage by identifier or display label (case-insensitive)
func ParseStageID(s string) (types.StageID, error) {
	needle := strings.TrimSpace(s)
	for _, def := range pipeline {
		if strings.EqualFold(string(def.id), needle) || strings.EqualFold(def.title, needle) {
			return def.id, nil
		}
	}
	return "", ErrUnknownStage
}

// EditableStages returns every non-terminal stage in pipeline order. These
// are the stages that hold items and the steps of the guided wizard.
func EditableStages() []types.StageID {
	ids := StageOrder()
	return ids[:len(ids)-1]
}

// StepNumber returns the 1-based wizard step for an editable stage
func StepNumber(id types.StageID) (int, bool) {
	for i, s := range EditableStages() {
		if s == id {
			return i + 1, true
		}
	}
	return 0, false
}

// StageForStep maps a 1-based wizard step back onto its stage
func StageForStep(step int) (types.StageID, bool) {
	steps := EditableStages()
	if step < 1 || step > len(steps) {
		return "", false
	}
	return steps[step-1], true
}
