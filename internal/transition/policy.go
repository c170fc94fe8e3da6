// Package transition gates cross-stage moves and stamps stage defaults
// onto items entering a stage.
package transition

import (
	"fmt"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
)

// PlannedDateChoice answers the planned-to-scheduled conflict
type PlannedDateChoice int

const (
	// PlannedChoiceNone means the caller has not decided yet
	PlannedChoiceNone PlannedDateChoice = iota
	// PlannedChoiceAdopt turns the planned date into the firm scheduled date
	PlannedChoiceAdopt
	// PlannedChoiceDiscard drops the planned date; scheduling happens later
	PlannedChoiceDiscard
)

// ParsePlannedDateChoice maps "adopt" / "discard" / "" to a choice
func ParsePlannedDateChoice(s string) (PlannedDateChoice, error) {
	switch s {
	case "":
		return PlannedChoiceNone, nil
	case "adopt":
		return PlannedChoiceAdopt, nil
	case "discard":
		return PlannedChoiceDiscard, nil
	default:
		return PlannedChoiceNone, fmt.Errorf("invalid planned date choice '%s' (must be: adopt, discard)", s)
	}
}

// Route tells the caller how to complete a move after the policy ran
type Route int

const (
	// RouteInsert inserts the stamped item into the target stage sequence
	RouteInsert Route = iota
	// RouteArchive sends the item through archive-and-remove
	RouteArchive
)

// Policy holds the defaults stamped onto items entering a stage
type Policy struct {
	DefaultProductionStatus string
	DefaultStartTime        string
	Slot                    time.Duration
}

// DefaultPolicy returns the stock stamping defaults
func DefaultPolicy() Policy {
	return Policy{
		DefaultProductionStatus: models.DefaultProductionStatus,
		DefaultStartTime:        "09:00",
		Slot:                    models.DefaultSlot,
	}
}

// Check validates that a move from one stage to another is legal.
// Moves within the same stage are always legal.
func (p Policy) Check(from, to types.StageID) error {
	if _, ok := models.StageRank(from); !ok {
		return unknownStage(from, to)
	}
	if _, ok := models.StageRank(to); !ok {
		return unknownStage(from, to)
	}
	if to == models.FirstStage() && from != models.FirstStage() {
		return reject(from, to,
			fmt.Sprintf("%q has already left %s and cannot move back", models.StageTitle(from), models.StageTitle(to)),
			ErrBackToIdeation)
	}
	return nil
}

// RequiresPlannedChoice reports whether moving item into to must pause for a
// planned-date decision.
func (p Policy) RequiresPlannedChoice(item models.Item, from, to types.StageID) bool {
	return to == types.StageScheduling && from != to && item.IsPlanned() && !item.IsScheduled()
}

// Apply validates a cross-stage move and returns the item stamped with the
// target stage's defaults plus the route that completes the move. The input
// item is never mutated; on error nothing should be written.
func (p Policy) Apply(item models.Item, from, to types.StageID, choice PlannedDateChoice, now time.Time) (models.Item, Route, error) {
	if err := p.Check(from, to); err != nil {
		return item, RouteInsert, err
	}
	out := item.Clone()
	if from == to {
		return out, RouteInsert, nil
	}

	if p.RequiresPlannedChoice(item, from, to) {
		switch choice {
		case PlannedChoiceAdopt:
			if err := out.SetSchedule(*out.PlannedDate, p.startTime(), "", p.Slot); err != nil {
				return item, RouteInsert, fmt.Errorf("failed to adopt planned date: %w", err)
			}
			out.PlannedDate = nil
		case PlannedChoiceDiscard:
			out.PlannedDate = nil
		default:
			return item, RouteInsert, ErrPlannedDateChoiceRequired
		}
	}

	route := p.stamp(&out, to)
	out.UpdatedAt = now
	return out, route, nil
}

// stamp applies entry defaults for the target stage
func (p Policy) stamp(it *models.Item, to types.StageID) Route {
	switch to {
	case types.StageShooting:
		if it.ProductionStatus == "" {
			it.ProductionStatus = p.productionStatus()
		}
	case types.StageScheduling:
		if it.SchedulingStatus != models.SchedulingScheduled {
			it.SchedulingStatus = models.SchedulingToSchedule
		}
	case types.StagePosted:
		it.Pinned = false
		return RouteArchive
	}
	return RouteInsert
}

func (p Policy) productionStatus() string {
	if p.DefaultProductionStatus == "" {
		return models.DefaultProductionStatus
	}
	return p.DefaultProductionStatus
}

func (p Policy) startTime() string {
	if p.DefaultStartTime == "" {
		return "09:00"
	}
	return p.DefaultStartTime
}
