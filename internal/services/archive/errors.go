package archive

import (
	"errors"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
)

// Archive-related errors
var (
	ErrInvalidItemID        = errors.New("invalid item ID")
	ErrEntryNotFound        = errors.New("archive entry not found")
	ErrConfirmationRequired = errors.New("permanent delete requires explicit confirmation")
	ErrMissingPayload       = errors.New("archive event carries no item")
	ErrItemNotFound         = models.ErrItemNotFound
	ErrTerminalStage        = models.ErrTerminalStage
	ErrUnknownStage         = models.ErrUnknownStage
)
