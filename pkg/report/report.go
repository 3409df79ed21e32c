// Package report renders capacity analysis results as text, HTML and a
// pre-filled email body.
package report

import (
	"strings"
	"time"

	"github.com/finaspirants/sprintcap/pkg/core/model"
)

// Options control how sprints are numbered in rendered reports.
type Options struct {
	// ReferenceDate anchors the absolute sprint numbering shown in reports.
	ReferenceDate time.Time
	// DurationDays is the sprint length used for that numbering.
	DurationDays int
}

// AbsoluteSprintNumber numbers a sprint by its start date's distance from
// the reference date, so reports stay stable when the analysis window moves.
func AbsoluteSprintNumber(start time.Time, opts Options) int {
	duration := opts.DurationDays
	if duration <= 0 {
		duration = 14
	}
	days := int(start.Sub(opts.ReferenceDate).Hours() / 24)
	return floorDiv(days, duration) + 1
}

// capacityClass buckets a capacity percentage for display.
func capacityClass(percent float64) string {
	switch {
	case percent < 80:
		return "critical"
	case percent < 90:
		return "warning"
	default:
		return "good"
	}
}

// memberLeave is one member's status split into display columns. Optional
// holidays affect the numbers but are not shown as a column.
type memberLeave struct {
	Employee     model.Employee
	PlannedLeave string
	Holiday      string
	OnLeave      bool
}

// splitStatuses breaks the per-member status strings into planned-leave and
// holiday columns.
func splitStatuses(members []model.MemberStatus) []memberLeave {
	out := make([]memberLeave, 0, len(members))
	for _, m := range members {
		row := memberLeave{Employee: m.Employee, PlannedLeave: "-", Holiday: "-"}
		if m.Status != "Available" {
			for _, part := range strings.Split(m.Status, "; ") {
				if rest, ok := strings.CutPrefix(part, string(model.LeavePlanned)+":"); ok {
					row.PlannedLeave = strings.TrimSpace(rest)
					row.OnLeave = true
				} else if rest, ok := strings.CutPrefix(part, string(model.LeavePublicHoliday)+":"); ok {
					row.Holiday = strings.TrimSpace(rest)
					row.OnLeave = true
				}
			}
		}
		out = append(out, row)
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
