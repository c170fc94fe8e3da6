package item

import (
	"github.com/google/uuid"
	"github.com/pattyalex/brand-journey-tracker/internal/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/spf13/cobra"
)

// addContentFlags registers the item content flags shared by create, update
// and edit
func addContentFlags(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.String("hook", "", "Opening hook")
	fl.String("script", "", "Script text (use - for stdin)")
	fl.String("notes", "", "Free-form notes (use - for stdin)")
	fl.String("platforms", "", "Comma-separated target platforms")
	fl.String("formats", "", "Comma-separated content formats")
	fl.String("location", "", "Shoot location")
	fl.String("props", "", "Shoot props")
	fl.String("status", "", "Production status: to-film, filming, filmed, reshoots")
	fl.StringArray("shot", nil, "Shot list entry (repeatable, replaces the list)")
	fl.StringArray("check", nil, "Editing checklist entry (repeatable, replaces the list)")
	fl.Bool("pinned", false, "Pin the item")
}

// contentPatch builds a patch from the content flags the user actually set
func contentPatch(cmd *cobra.Command) (models.ItemPatch, error) {
	var p models.ItemPatch
	fl := cmd.Flags()

	str := func(name string) *string {
		if !fl.Changed(name) {
			return nil
		}
		v, _ := fl.GetString(name)
		return &v
	}
	list := func(name string) *[]string {
		if !fl.Changed(name) {
			return nil
		}
		v, _ := fl.GetString(name)
		out := cli.SplitList(v)
		return &out
	}

	if fl.Lookup("title") != nil {
		p.Title = str("title")
	}
	p.Hook = str("hook")
	p.ShootLocation = str("location")
	p.ShootProps = str("props")
	p.ProductionStatus = str("status")
	p.Platforms = list("platforms")
	p.Formats = list("formats")

	for name, dst := range map[string]**string{"script": &p.Script, "notes": &p.Notes} {
		v := str(name)
		if v == nil {
			continue
		}
		text, err := cli.ReadText(*v)
		if err != nil {
			return p, err
		}
		*dst = &text
	}

	if fl.Changed("shot") {
		descs, _ := fl.GetStringArray("shot")
		shots := make([]models.Shot, 0, len(descs))
		for _, d := range descs {
			shots = append(shots, models.Shot{ID: uuid.NewString(), Description: d})
		}
		p.Shots = &shots
	}
	if fl.Changed("check") {
		texts, _ := fl.GetStringArray("check")
		checklist := make([]models.ChecklistItem, 0, len(texts))
		for _, text := range texts {
			checklist = append(checklist, models.ChecklistItem{ID: uuid.NewString(), Text: text})
		}
		p.EditChecklist = &checklist
	}
	if fl.Changed("pinned") {
		v, _ := fl.GetBool("pinned")
		p.Pinned = &v
	}
	return p, nil
}
