package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultSlot is the length of a scheduled slot when no end time is given
const DefaultSlot = time.Hour

// clockLayout is the HH:MM format used for start and end times
const clockLayout = "15:04"

// lastMinute caps end times so a slot never wraps past midnight
const lastMinute = 23*time.Hour + 59*time.Minute

// ErrInvalidClock indicates a time of day that is not HH:MM
var ErrInvalidClock = errors.New("time must be in HH:MM format")

// ErrEndBeforeStart indicates an end time that is not after the start time
var ErrEndBeforeStart = errors.New("end time must be after start time")

// ParseClock converts HH:MM into an offset from midnight
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, ErrInvalidClock
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// FormatClock converts an offset from midnight into HH:MM
func FormatClock(d time.Duration) string {
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// EndAfter returns start+slot as HH:MM, clamped to 23:59
func EndAfter(start string, slot time.Duration) (string, error) {
	s, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	if slot <= 0 {
		slot = DefaultSlot
	}
	end := s + slot
	if end > lastMinute {
		end = lastMinute
	}
	return FormatClock(end), nil
}

// SetSchedule commits the item to a firm calendar slot. The date is truncated
// to its calendar day; end defaults to start+slot when empty. The tentative
// planned date is left untouched.
func (it *Item) SetSchedule(date time.Time, start, end string, slot time.Duration) error {
	s, err := ParseClock(start)
	if err != nil {
		return err
	}
	if strings.TrimSpace(end) == "" {
		end, err = EndAfter(start, slot)
		if err != nil {
			return err
		}
	}
	e, err := ParseClock(end)
	if err != nil {
		return err
	}
	if e <= s && s != lastMinute {
		return ErrEndBeforeStart
	}

	day := DateOnly(date)
	it.ScheduledDate = &day
	it.StartTime = FormatClock(s)
	it.EndTime = FormatClock(e)
	it.SchedulingStatus = SchedulingScheduled
	return nil
}
