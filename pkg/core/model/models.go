package model

import "time"

// LeaveType classifies a leave entry by reason
type LeaveType string

const (
	LeavePlanned         LeaveType = "planned"
	LeavePublicHoliday   LeaveType = "public_holiday"
	LeaveOptionalHoliday LeaveType = "optional_holiday"
)

func (t LeaveType) IsValid() bool {
	return t == LeavePlanned || t == LeavePublicHoliday || t == LeaveOptionalHoliday
}

// Personal reports whether this leave type counts against an individual's
// capacity. Public holidays apply to the whole team and are tracked separately.
func (t LeaveType) Personal() bool {
	return t == LeavePlanned || t == LeaveOptionalHoliday
}

// Employee represents a team member parsed from the capacity sheet.
// Equality is by ID.
type Employee struct {
	ID   string
	Name string
}

// LeaveEntry records the dates an employee is unavailable, tagged by reason.
// One entry is created per spreadsheet cell that yielded dates.
type LeaveEntry struct {
	Employee    Employee
	Dates       []time.Time // ascending, deduplicated, midnight UTC
	Type        LeaveType
	Description string
}

// OnCallSchedule represents one row of the on-call schedule sheet.
// Start and End are inclusive; Start <= End.
type OnCallSchedule struct {
	Start     time.Time
	End       time.Time
	Primary   string
	Secondary string
}

// Overlaps reports whether the schedule's period intersects [start, end] inclusive.
func (o OnCallSchedule) Overlaps(start, end time.Time) bool {
	return !o.Start.After(end) && !o.End.Before(start)
}

// Sprint is a fixed-length planning period. End = Start + duration - 1 day,
// both inclusive.
type Sprint struct {
	Number          int
	Start           time.Time
	End             time.Time
	OnCallPrimary   string
	OnCallSecondary string
}

// Contains reports whether the date falls within the sprint, inclusive.
func (s Sprint) Contains(d time.Time) bool {
	return !d.Before(s.Start) && !d.After(s.End)
}

// MemberStatus pairs an employee with their formatted leave status for a sprint.
// Status is "Available" or a "type: dates; type: dates" summary.
type MemberStatus struct {
	Employee Employee
	Status   string
}

// SprintCapacity is the computed capacity result for one sprint.
type SprintCapacity struct {
	Sprint           Sprint
	TotalMembers     int
	AvailableMembers int
	MembersOnLeave   []MemberStatus
	AllMembers       []MemberStatus
	CapacityPercent  float64
	WorkingDays      int
	IdealHours       float64
	ActualHours      float64
}
