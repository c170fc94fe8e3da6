package types

import "strings"

// ID types give semantic meaning to the strings that identify content and
// pipeline stages. Item IDs are opaque (uuid strings); stage IDs come from the
// fixed production pipeline.

// ItemID identifies a unique content item on the board or in the archive
type ItemID string

// StageID identifies one of the fixed production stages
type StageID string

// Fixed stage identifiers, in pipeline order
const (
	StageIdeation   StageID = "ideation"
	StageScripting  StageID = "scripting"
	StageShooting   StageID = "shooting"
	StageEditing    StageID = "editing"
	StageScheduling StageID = "scheduling"
	StagePosted     StageID = "posted"
)

// String returns the raw identifier
func (id ItemID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is missing or blank
func (id ItemID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// String returns the raw identifier
func (id StageID) String() string {
	return string(id)
}
