package models

// ============================================================================
// PRODUCTION STATUS CONSTANTS
// ============================================================================

// Production status values used while an item is being filmed
const (
	ProductionToFilm   = "to-film"
	ProductionFilming  = "filming"
	ProductionFilmed   = "filmed"
	ProductionReshoots = "reshoots"
)

// DefaultProductionStatus is stamped onto items entering the shooting stage
const DefaultProductionStatus = ProductionToFilm

// ============================================================================
// POSITION CONSTANTS
// ============================================================================

// AppendIndex requests insertion at the end of a stage sequence
const AppendIndex = -1

// ============================================================================
// TITLE LIMITS
// ============================================================================

// MaxTitleLength bounds item titles
const MaxTitleLength = 255

// ProductionStatuses lists every valid production status in workflow order
func ProductionStatuses() []string {
	return []string{ProductionToFilm, ProductionFilming, ProductionFilmed, ProductionReshoots}
}

// IsProductionStatus reports whether s is a known production status
func IsProductionStatus(s string) bool {
	for _, v := range ProductionStatuses() {
		if v == s {
			return true
		}
	}
	return false
}
