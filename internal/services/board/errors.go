package board

import (
	"errors"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
)

// Item-related errors
var (
	// Validation errors
	ErrEmptyTitle    = errors.New("item title cannot be empty")
	ErrTitleTooLong  = errors.New("item title cannot exceed 255 characters")
	ErrInvalidItemID = errors.New("invalid item ID")
	ErrEmptyPatch    = errors.New("no fields to update")
	ErrInvalidStatus = errors.New("invalid production status")

	// Business logic errors, shared with the board model
	ErrItemNotFound  = models.ErrItemNotFound
	ErrUnknownStage  = models.ErrUnknownStage
	ErrTerminalStage = models.ErrTerminalStage
)
