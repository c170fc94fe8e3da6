package models

import "errors"

// Board model errors
var (
	// ErrItemNotFound indicates no stage sequence holds the requested item
	ErrItemNotFound = errors.New("item not found")

	// ErrUnknownStage indicates a stage identifier outside the fixed pipeline
	ErrUnknownStage = errors.New("unknown stage")

	// ErrTerminalStage indicates an attempt to place an item directly in the posted stage
	ErrTerminalStage = errors.New("posted stage does not hold items")

	// ErrDuplicateItem indicates the item is already placed somewhere on the board
	ErrDuplicateItem = errors.New("item is already on the board")

	// ErrEmptyTitle indicates an item title that is blank
	ErrEmptyTitle = errors.New("item title cannot be empty")

	// ErrInvalidDate indicates a date that is not YYYY-MM-DD
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

	// ErrInvalidIndex indicates a position outside the stage sequence
	ErrInvalidIndex = errors.New("index out of range")
)
