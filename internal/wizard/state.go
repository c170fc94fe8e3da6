// Package wizard drives the guided, step-per-stage editor for one item.
package wizard

import (
	"errors"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
)

var (
	// ErrNotOpen indicates an operation that needs an open wizard
	ErrNotOpen = errors.New("wizard is not open")
	// ErrAlreadyOpen indicates Open while another item is being edited
	ErrAlreadyOpen = errors.New("wizard is already editing an item")
	// ErrInvalidStep indicates a step outside the editable stages
	ErrInvalidStep = errors.New("invalid wizard step")
	// ErrStartTimeRequired indicates a scheduling draft with a date but no
	// start time
	ErrStartTimeRequired = errors.New("a scheduled date needs a start time")
)

// Mode tags the wizard state
type Mode int

const (
	ModeClosed Mode = iota
	ModeEditing
)

// State is Closed, or Editing one item at one step with that step's draft
// fields. Step, ItemID and Draft are meaningful only while editing.
type State struct {
	Mode   Mode
	Step   types.StageID
	ItemID types.ItemID
	Draft  Draft
}

// IsOpen reports whether the wizard is editing an item
func (s State) IsOpen() bool {
	return s.Mode == ModeEditing
}

// StepNumber returns the 1-based step index, or 0 when closed
func (s State) StepNumber() int {
	if !s.IsOpen() {
		return 0
	}
	n, _ := models.StepNumber(s.Step)
	return n
}

// Draft holds the in-flight edits of the active step. Each step owns a
// disjoint subset of these fields; only the active step's subset is
// hydrated and flushed.
type Draft struct {
	// ideation
	Title       string
	Hook        string
	Notes       string
	Platforms   []string
	PlannedDate *time.Time

	// scripting
	Script        string
	Formats       []string
	ShootLocation string
	ShootProps    string

	// shooting
	Shots            []models.Shot
	ProductionStatus string

	// editing
	EditChecklist []models.ChecklistItem

	// scheduling
	ScheduledDate *time.Time
	StartTime     string
	EndTime       string
}

// hydrate loads the step's fields from it into a fresh draft
func hydrate(step types.StageID, it models.Item) Draft {
	it = it.Clone()
	var d Draft
	switch step {
	case types.StageIdeation:
		d.Title, d.Hook, d.Notes = it.Title, it.Hook, it.Notes
		d.Platforms = it.Platforms
		d.PlannedDate = it.PlannedDate
	case types.StageScripting:
		d.Script, d.Formats = it.Script, it.Formats
		d.ShootLocation, d.ShootProps = it.ShootLocation, it.ShootProps
	case types.StageShooting:
		d.Shots, d.ProductionStatus = it.Shots, it.ProductionStatus
	case types.StageEditing:
		d.EditChecklist = it.EditChecklist
	case types.StageScheduling:
		d.ScheduledDate = it.ScheduledDate
		d.StartTime, d.EndTime = it.StartTime, it.EndTime
	}
	return d
}

// patch returns the step's owned content fields as an item patch. Date
// fields go through the scheduling service instead.
func (d Draft) patch(step types.StageID) models.ItemPatch {
	var p models.ItemPatch
	switch step {
	case types.StageIdeation:
		p.Title, p.Hook, p.Notes = &d.Title, &d.Hook, &d.Notes
		p.Platforms = &d.Platforms
	case types.StageScripting:
		p.Script, p.Formats = &d.Script, &d.Formats
		p.ShootLocation, p.ShootProps = &d.ShootLocation, &d.ShootProps
	case types.StageShooting:
		p.Shots, p.ProductionStatus = &d.Shots, &d.ProductionStatus
	case types.StageEditing:
		p.EditChecklist = &d.EditChecklist
	}
	return p
}

// merge overlays the set fields of override onto p
func merge(p, override models.ItemPatch) models.ItemPatch {
	if override.Title != nil {
		p.Title = override.Title
	}
	if override.Hook != nil {
		p.Hook = override.Hook
	}
	if override.Script != nil {
		p.Script = override.Script
	}
	if override.Notes != nil {
		p.Notes = override.Notes
	}
	if override.Shots != nil {
		p.Shots = override.Shots
	}
	if override.EditChecklist != nil {
		p.EditChecklist = override.EditChecklist
	}
	if override.Platforms != nil {
		p.Platforms = override.Platforms
	}
	if override.Formats != nil {
		p.Formats = override.Formats
	}
	if override.ShootLocation != nil {
		p.ShootLocation = override.ShootLocation
	}
	if override.ShootProps != nil {
		p.ShootProps = override.ShootProps
	}
	if override.ProductionStatus != nil {
		p.ProductionStatus = override.ProductionStatus
	}
	if override.Pinned != nil {
		p.Pinned = override.Pinned
	}
	return p
}
