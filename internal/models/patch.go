package models

import "time"

// ItemPatch carries optional field updates.
// Nil pointers mean "leave unchanged"; a pointer to an empty value clears.
type ItemPatch struct {
	Title            *string
	Hook             *string
	Script           *string
	Notes            *string
	Shots            *[]Shot
	EditChecklist    *[]ChecklistItem
	Platforms        *[]string
	Formats          *[]string
	ShootLocation    *string
	ShootProps       *string
	ProductionStatus *string
	Pinned           *bool
}

// IsEmpty reports whether the patch changes nothing
func (p ItemPatch) IsEmpty() bool {
	return p.Title == nil && p.Hook == nil && p.Script == nil && p.Notes == nil &&
		p.Shots == nil && p.EditChecklist == nil && p.Platforms == nil &&
		p.Formats == nil && p.ShootLocation == nil && p.ShootProps == nil &&
		p.ProductionStatus == nil && p.Pinned == nil
}

// Apply writes the set fields onto it and bumps UpdatedAt
func (p ItemPatch) Apply(it *Item, now time.Time) {
	if p.IsEmpty() {
		return
	}
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Hook != nil {
		it.Hook = *p.Hook
	}
	if p.Script != nil {
		it.Script = *p.Script
	}
	if p.Notes != nil {
		it.Notes = *p.Notes
	}
	if p.Shots != nil {
		it.Shots = append([]Shot(nil), (*p.Shots)...)
	}
	if p.EditChecklist != nil {
		it.EditChecklist = append([]ChecklistItem(nil), (*p.EditChecklist)...)
	}
	if p.Platforms != nil {
		it.Platforms = append([]string(nil), (*p.Platforms)...)
	}
	if p.Formats != nil {
		it.Formats = append([]string(nil), (*p.Formats)...)
	}
	if p.ShootLocation != nil {
		it.ShootLocation = *p.ShootLocation
	}
	if p.ShootProps != nil {
		it.ShootProps = *p.ShootProps
	}
	if p.ProductionStatus != nil {
		it.ProductionStatus = *p.ProductionStatus
	}
	if p.Pinned != nil {
		it.Pinned = *p.Pinned
	}
	it.UpdatedAt = now
}
