// Package capacity computes per-sprint team capacity from leave entries and
// the on-call assignment.
package capacity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/finaspirants/sprintcap/pkg/core/dates"
	"github.com/finaspirants/sprintcap/pkg/core/model"
)

// Config holds the tunables for the hour math.
type Config struct {
	HoursPerDay     float64
	OnCallReduction float64 // subtracted from HoursPerDay for the on-call primary
}

// Compute calculates the capacity for one sprint.
//
// Public holidays found in any employee's leave entries apply to the whole
// team: they are removed from the working-day count and shown uniformly in
// every member's status. Only planned and optional-holiday leave counts
// against an individual.
//
// The on-call primary is special-cased: holidays still count as working days
// for them, and they work at a reduced hourly rate. Their person-days are
// pulled out of the regular-team aggregate and added back separately.
func Compute(sprint model.Sprint, employees []model.Employee, entries []model.LeaveEntry, cfg Config) model.SprintCapacity {
	holidays := holidaySet(sprint, entries)
	workingDays := countWorkingDays(sprint, holidays)

	allMembers, membersOnLeave := memberStatuses(sprint, employees, entries, holidays)

	totalPersonDays := len(employees) * workingDays
	leavePersonDays := 0
	for _, emp := range employees {
		leavePersonDays += personalLeaveDays(sprint, emp, entries, holidays)
	}
	availablePersonDays := totalPersonDays - leavePersonDays

	regularPersonDays := totalPersonDays
	regularAvailableDays := availablePersonDays

	var onCallIdeal, onCallActual float64
	if sprint.OnCallPrimary != "" {
		if onCall, ok := MatchEmployee(sprint.OnCallPrimary, employees); ok {
			// Holidays count as working days for the on-call person.
			onCallWorkingDays := countWorkingDays(sprint, nil)
			onCallLeaveDays := personalLeaveDays(sprint, onCall, entries, nil)
			onCallHours := cfg.HoursPerDay - cfg.OnCallReduction

			onCallIdeal = float64(onCallWorkingDays) * onCallHours
			onCallActual = float64(onCallWorkingDays-onCallLeaveDays) * onCallHours

			regularPersonDays -= workingDays
			regularAvailableDays -= workingDays - onCallLeaveDays
		}
	}

	idealHours := float64(regularPersonDays)*cfg.HoursPerDay + onCallIdeal
	actualHours := float64(regularAvailableDays)*cfg.HoursPerDay + onCallActual

	percent := 0.0
	if idealHours > 0 {
		percent = actualHours / idealHours * 100
	}

	return model.SprintCapacity{
		Sprint:           sprint,
		TotalMembers:     len(employees),
		AvailableMembers: len(employees) - len(membersOnLeave),
		MembersOnLeave:   membersOnLeave,
		AllMembers:       allMembers,
		CapacityPercent:  percent,
		WorkingDays:      workingDays,
		IdealHours:       idealHours,
		ActualHours:      actualHours,
	}
}

// holidaySet collects every public-holiday date inside the sprint,
// regardless of which employee's entry reported it.
func holidaySet(sprint model.Sprint, entries []model.LeaveEntry) map[time.Time]bool {
	holidays := make(map[time.Time]bool)
	for _, entry := range entries {
		if entry.Type != model.LeavePublicHoliday {
			continue
		}
		for _, d := range entry.Dates {
			if sprint.Contains(d) {
				holidays[d] = true
			}
		}
	}
	return holidays
}

// countWorkingDays counts weekdays in the sprint that are not in the
// holiday set. A nil set counts all weekdays.
func countWorkingDays(sprint model.Sprint, holidays map[time.Time]bool) int {
	count := 0
	for d := sprint.Start; !d.After(sprint.End); d = d.AddDate(0, 0, 1) {
		if isWeekday(d) && !holidays[d] {
			count++
		}
	}
	return count
}

// personalLeaveDays counts the employee's planned/optional leave days that
// fall on a sprint weekday outside the holiday set. Pass a nil set to count
// holidays as normal working days (the on-call rule).
func personalLeaveDays(sprint model.Sprint, emp model.Employee, entries []model.LeaveEntry, holidays map[time.Time]bool) int {
	count := 0
	for _, entry := range entries {
		if entry.Employee.ID != emp.ID || !entry.Type.Personal() {
			continue
		}
		for _, d := range entry.Dates {
			if sprint.Contains(d) && isWeekday(d) && !holidays[d] {
				count++
			}
		}
	}
	return count
}

// memberStatuses builds the per-member status strings. An employee counts
// as "on leave" only when they have personal leave; the shared holiday
// block alone does not flag them.
func memberStatuses(sprint model.Sprint, employees []model.Employee, entries []model.LeaveEntry, holidays map[time.Time]bool) (all, onLeave []model.MemberStatus) {
	sharedHolidays := formatHolidaySet(holidays)

	for _, emp := range employees {
		byType := make(map[model.LeaveType][]time.Time)
		for _, entry := range entries {
			if entry.Employee.ID != emp.ID || entry.Type == model.LeavePublicHoliday {
				continue
			}
			for _, d := range entry.Dates {
				if sprint.Contains(d) {
					byType[entry.Type] = append(byType[entry.Type], d)
				}
			}
		}

		var reasons []string
		if sharedHolidays != "" {
			reasons = append(reasons, fmt.Sprintf("%s: %s", model.LeavePublicHoliday, sharedHolidays))
		}
		for _, lt := range []model.LeaveType{model.LeavePlanned, model.LeaveOptionalHoliday} {
			if ds := byType[lt]; len(ds) > 0 {
				reasons = append(reasons, fmt.Sprintf("%s: %s", lt, dates.FormatRanges(ds)))
			}
		}

		if len(reasons) == 0 {
			all = append(all, model.MemberStatus{Employee: emp, Status: "Available"})
			continue
		}

		status := model.MemberStatus{Employee: emp, Status: strings.Join(reasons, "; ")}
		all = append(all, status)
		if len(byType) > 0 {
			onLeave = append(onLeave, status)
		}
	}
	return all, onLeave
}

func formatHolidaySet(holidays map[time.Time]bool) string {
	if len(holidays) == 0 {
		return ""
	}
	ds := make([]time.Time, 0, len(holidays))
	for d := range holidays {
		ds = append(ds, d)
	}
	sort.Slice(ds, func(i, j int) bool { return ds[i].Before(ds[j]) })
	return dates.FormatRanges(ds)
}

func isWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
