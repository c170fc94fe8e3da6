package schedule

import (
	"errors"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
)

// Scheduling-related errors
var (
	ErrInvalidItemID  = errors.New("invalid item ID")
	ErrNotOnCalendar  = errors.New("item has no planned or scheduled date")
	ErrNotScheduled   = errors.New("item has no firm date to move")
	ErrInvalidRange   = errors.New("calendar range end is before its start")
	ErrItemNotFound   = models.ErrItemNotFound
	ErrInvalidClock   = models.ErrInvalidClock
	ErrEndBeforeStart = models.ErrEndBeforeStart
)
