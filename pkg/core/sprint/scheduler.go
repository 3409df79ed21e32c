// Package sprint generates fixed-length sprint windows from an anchor date
// and selects the display window around the current day.
package sprint

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/finaspirants/sprintcap/pkg/core/model"
)

// WindowSize is the number of sprints in the display window: the previous
// sprint (or the first, when there is none), the current one and the next two.
const WindowSize = 4

// Generate produces count contiguous sprints of durationDays each, starting
// at the anchor. Sprint i starts at anchor + i*duration and ends duration-1
// days later, inclusive. Pure function; returns nil for non-positive input.
func Generate(anchor time.Time, durationDays, count int) []model.Sprint {
	if durationDays <= 0 || count <= 0 {
		return nil
	}

	anchor = midnightUTC(anchor)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.DAILY,
		Interval: durationDays,
		Count:    count,
		Dtstart:  anchor,
	})
	if err != nil {
		return nil
	}

	starts := rule.All()
	sprints := make([]model.Sprint, len(starts))
	for i, start := range starts {
		sprints[i] = model.Sprint{
			Number: i + 1,
			Start:  start,
			End:    start.AddDate(0, 0, durationDays-1),
		}
	}
	return sprints
}

// CurrentIndex returns the 0-based index of the sprint containing today.
// Days before the anchor all collapse to index 0.
func CurrentIndex(today, anchor time.Time, durationDays int) int {
	if durationDays <= 0 {
		return 0
	}
	days := int(midnightUTC(today).Sub(midnightUTC(anchor)).Hours() / 24)
	idx := days / durationDays
	if days < 0 || idx < 0 {
		return 0
	}
	return idx
}

// Window returns the 4-sprint display window around today: previous (or
// current again at index 0), current, and the next two. On-call assignments
// are applied to every sprint in the window.
func Window(today, anchor time.Time, durationDays int, schedules []model.OnCallSchedule) []model.Sprint {
	current := CurrentIndex(today, anchor, durationDays)

	sprints := Generate(anchor, durationDays, current+5)
	if sprints == nil {
		return nil
	}

	for i := range sprints {
		AssignOnCall(&sprints[i], schedules)
	}

	start := current - 1
	if start < 0 {
		start = 0
	}
	return sprints[start : start+WindowSize]
}

// AssignOnCall sets the sprint's on-call names from the first schedule whose
// period overlaps the sprint. First match wins; overlapping schedules are
// not resolved further.
func AssignOnCall(s *model.Sprint, schedules []model.OnCallSchedule) {
	for _, sched := range schedules {
		if sched.Overlaps(s.Start, s.End) {
			s.OnCallPrimary = sched.Primary
			s.OnCallSecondary = sched.Secondary
			return
		}
	}
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
