// Package classifier infers which stage an item belongs in from its own data,
// independent of the stage currently holding it.
package classifier

import (
	"strings"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
)

// rule pairs a stage with the signal that places an item there
type rule struct {
	stage types.StageID
	match func(models.Item) bool
}

// rules are evaluated most-advanced first; the first match wins. Items pick
// up fields out of order when steps are skipped, so downstream signals take
// priority over upstream ones.
var rules = []rule{
	{types.StageScheduling, func(it models.Item) bool { return it.IsScheduled() }},
	{types.StageEditing, func(it models.Item) bool { return hasChecklistEntry(it.EditChecklist) }},
	{types.StageShooting, func(it models.Item) bool { return len(it.Shots) > 0 }},
	{types.StageScripting, func(it models.Item) bool { return it.HasScript() }},
}

// Classify returns the stage an item's data says it belongs in
func Classify(it models.Item) types.StageID {
	for _, r := range rules {
		if r.match(it) {
			return r.stage
		}
	}
	return types.StageIdeation
}

// FirstIncompleteStep returns the wizard step an item should open on: the
// first stage for an item still classified there, otherwise the stage after
// its classified one, capped at the last editable stage.
func FirstIncompleteStep(it models.Item) types.StageID {
	stage := Classify(it)
	if stage == models.FirstStage() {
		return stage
	}
	steps := models.EditableStages()
	for i, s := range steps {
		if s != stage {
			continue
		}
		if i+1 < len(steps) {
			return steps[i+1]
		}
		return s
	}
	return models.FirstStage()
}

func hasChecklistEntry(list []models.ChecklistItem) bool {
	for _, c := range list {
		if strings.TrimSpace(c.Text) != "" {
			return true
		}
	}
	return false
}
