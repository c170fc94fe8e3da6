package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
)

// SchedulingStatus tracks how far an item is from a firm calendar slot
type SchedulingStatus string

const (
	SchedulingNotScheduled SchedulingStatus = "not-scheduled"
	SchedulingToSchedule   SchedulingStatus = "to-schedule"
	SchedulingScheduled    SchedulingStatus = "scheduled"
)

// Shot is one storyboard / shot-list entry
type Shot struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Angle       string `json:"angle,omitempty"`
	Done        bool   `json:"done,omitempty"`
}

// ChecklistItem is one line of the editing checklist
type ChecklistItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked,omitempty"`
}

// Item is one piece of content moving through the production pipeline.
// StageID is derived from the stage sequence that holds the item and is
// recomputed by Board.Sweep; it is never authoritative on its own.
type Item struct {
	ID      types.ItemID  `json:"id"`
	StageID types.StageID `json:"stageId,omitempty"`
	Title   string        `json:"title"`

	// Stage payloads
	Hook             string          `json:"hook,omitempty"`
	Script           string          `json:"script,omitempty"`
	Shots            []Shot          `json:"shots,omitempty"`
	EditChecklist    []ChecklistItem `json:"editChecklist,omitempty"`
	Platforms        []string        `json:"platforms,omitempty"`
	Formats          []string        `json:"formats,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	ShootLocation    string          `json:"shootLocation,omitempty"`
	ShootProps       string          `json:"shootProps,omitempty"`
	ProductionStatus string          `json:"productionStatus,omitempty"`
	Pinned           bool            `json:"pinned,omitempty"`

	// Scheduling. Dates carry the calendar day only; the time of day lives in
	// StartTime/EndTime as HH:MM.
	PlannedDate      *time.Time       `json:"plannedDate,omitempty"`
	ScheduledDate    *time.Time       `json:"scheduledDate,omitempty"`
	StartTime        string           `json:"startTime,omitempty"`
	EndTime          string           `json:"endTime,omitempty"`
	SchedulingStatus SchedulingStatus `json:"schedulingStatus,omitempty"`

	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// NewItem builds a fresh item with a generated identifier
func NewItem(title string, now time.Time) Item {
	return Item{
		ID:               NewItemID(),
		Title:            strings.TrimSpace(title),
		SchedulingStatus: SchedulingNotScheduled,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// NewItemID returns a new random item identifier
func NewItemID() types.ItemID {
	return types.ItemID(uuid.New().String())
}

// IsGarbage reports whether the item is a placeholder left behind by an
// unfinished creation flow (missing identifier or blank title).
func (it Item) IsGarbage() bool {
	return it.ID.IsZero() || strings.TrimSpace(it.Title) == ""
}

// HasScript reports whether long-form script text is present
func (it Item) HasScript() bool {
	return strings.TrimSpace(it.Script) != ""
}

// IsScheduled reports whether the item carries a firm calendar date
func (it Item) IsScheduled() bool {
	return it.ScheduledDate != nil && !it.ScheduledDate.IsZero()
}

// IsPlanned reports whether the item carries a tentative calendar date
func (it Item) IsPlanned() bool {
	return it.PlannedDate != nil && !it.PlannedDate.IsZero()
}

// Clone returns a deep copy so callers can mutate without aliasing slices
// or date pointers held by the board.
func (it Item) Clone() Item {
	out := it
	if it.Shots != nil {
		out.Shots = append([]Shot(nil), it.Shots...)
	}
	if it.EditChecklist != nil {
		out.EditChecklist = append([]ChecklistItem(nil), it.EditChecklist...)
	}
	if it.Platforms != nil {
		out.Platforms = append([]string(nil), it.Platforms...)
	}
	if it.Formats != nil {
		out.Formats = append([]string(nil), it.Formats...)
	}
	out.PlannedDate = cloneTime(it.PlannedDate)
	out.ScheduledDate = cloneTime(it.ScheduledDate)
	out.ArchivedAt = cloneTime(it.ArchivedAt)
	return out
}

// ClearSchedule drops the firm calendar commitment and reverts the status
func (it *Item) ClearSchedule() {
	it.ScheduledDate = nil
	it.StartTime = ""
	it.EndTime = ""
	it.SchedulingStatus = SchedulingToSchedule
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// DateOnly truncates t to midnight of its calendar day, keeping its location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateKey formats the calendar-day portion of t as YYYY-MM-DD
func DateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ParseDate parses a YYYY-MM-DD calendar date in the local zone
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
