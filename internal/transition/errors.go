package transition

import (
	"errors"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
)

// Transition errors
var (
	// ErrBackToIdeation indicates an attempt to return an item to the first stage
	ErrBackToIdeation = errors.New("items cannot move back to ideation")

	// ErrPlannedDateChoiceRequired indicates the move is paused until the caller
	// decides what to do with the item's tentative planned date
	ErrPlannedDateChoiceRequired = errors.New("planned date must be adopted or discarded before scheduling")
)

// RejectionError is returned when a transition is not allowed.
// Reason is suitable for display to the user.
type RejectionError struct {
	From   types.StageID
	To     types.StageID
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *RejectionError) Error() string {
	return e.Reason
}

// Unwrap exposes the underlying sentinel for errors.Is
func (e *RejectionError) Unwrap() error {
	return e.Err
}

func reject(from, to types.StageID, reason string, err error) *RejectionError {
	return &RejectionError{From: from, To: to, Reason: reason, Err: err}
}

func unknownStage(from, to types.StageID) *RejectionError {
	return reject(from, to, "unknown stage", models.ErrUnknownStage)
}
