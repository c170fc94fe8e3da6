// Package schedule derives the date-keyed calendar view of the board.
package schedule

import (
	"sort"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
)

// Day groups the items that fall on one calendar day
type Day struct {
	Date      string        `json:"date"`
	Scheduled []models.Item `json:"scheduled"`
	Planned   []models.Item `json:"planned"`
}

// Index maps a YYYY-MM-DD key to the items on that day. It is rebuilt on
// every read and never persisted.
type Index map[string]*Day

// Build scans items for firm and tentative dates. An item with both lands
// under Scheduled only; the firm date wins.
func Build(items []models.Item) Index {
	ix := make(Index)
	for _, it := range items {
		switch {
		case it.IsScheduled():
			d := ix.day(models.DateKey(*it.ScheduledDate))
			d.Scheduled = append(d.Scheduled, it)
		case it.IsPlanned():
			d := ix.day(models.DateKey(*it.PlannedDate))
			d.Planned = append(d.Planned, it)
		}
	}
	for _, d := range ix {
		sort.SliceStable(d.Scheduled, func(i, j int) bool {
			return d.Scheduled[i].StartTime < d.Scheduled[j].StartTime
		})
	}
	return ix
}

func (ix Index) day(key string) *Day {
	d, ok := ix[key]
	if !ok {
		d = &Day{Date: key}
		ix[key] = d
	}
	return d
}

// On returns the entries for a calendar day
func (ix Index) On(date time.Time) Day {
	if d, ok := ix[models.DateKey(date)]; ok {
		return *d
	}
	return Day{Date: models.DateKey(date)}
}

// Between returns the populated days in [from, to], ordered by date
func (ix Index) Between(from, to time.Time) []Day {
	lo, hi := models.DateKey(from), models.DateKey(to)
	var out []Day
	for key, d := range ix {
		if key >= lo && key <= hi {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Keys returns every populated date key in order
func (ix Index) Keys() []string {
	keys := make([]string, 0, len(ix))
	for k := range ix {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DropOutcome says how a drag onto a calendar day must be completed
type DropOutcome int

const (
	// DropIgnored means the item carries no date and the calendar ignores it
	DropIgnored DropOutcome = iota
	// DropNeedsTime means a firm slot is moving; the caller must confirm a
	// start time and then reschedule
	DropNeedsTime
	// DropUpdatePlanned means only the tentative date moves, with no prompt
	DropUpdatePlanned
)

// ResolveDrop classifies a drag of item onto a calendar day
func ResolveDrop(it models.Item) DropOutcome {
	switch {
	case it.IsScheduled():
		return DropNeedsTime
	case it.IsPlanned():
		return DropUpdatePlanned
	default:
		return DropIgnored
	}
}
