package events

import (
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
)

// EventType indicates what kind of change occurred
type EventType string

const (
	// EventBoardUpdated is sent after every persisted board mutation
	EventBoardUpdated EventType = "board_updated"
	// EventArchiveItem asks the archive subsystem to archive the carried item
	EventArchiveItem EventType = "archive_item"
	// EventOpenArchive asks the view layer to open the archive panel
	EventOpenArchive EventType = "open_archive"
)

// Event represents a cross-view notification
type Event struct {
	Type       EventType
	Source     string       `json:",omitempty"` // Writer tag; listeners ignore their own
	Item       *models.Item `json:",omitempty"` // Payload for archive_item
	Timestamp  time.Time    // When the event occurred
	SequenceID int64        // Monotonically increasing sequence number for ordering
}
