package capacity

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finaspirants/sprintcap/pkg/core/dates"
	"github.com/finaspirants/sprintcap/pkg/core/model"
)

var testCfg = Config{HoursPerDay: 6, OnCallReduction: 3}

// testSprint spans Mon 2026-01-05 .. Sun 2026-01-18: 14 days, 10 weekdays.
func testSprint() model.Sprint {
	return model.Sprint{
		Number: 1,
		Start:  dates.New(2026, time.January, 5),
		End:    dates.New(2026, time.January, 18),
	}
}

func testTeam(n int) []model.Employee {
	team := make([]model.Employee, n)
	for i := range team {
		team[i] = model.Employee{ID: fmt.Sprintf("10%02d", i+1), Name: fmt.Sprintf("Member %c", 'A'+i)}
	}
	return team
}

func TestCompute_FullAvailability(t *testing.T) {
	result := Compute(testSprint(), testTeam(6), nil, testCfg)

	assert.Equal(t, 10, result.WorkingDays)
	assert.Equal(t, 6, result.TotalMembers)
	assert.Equal(t, 6, result.AvailableMembers)
	assert.Empty(t, result.MembersOnLeave)
	assert.InDelta(t, 100.0, result.CapacityPercent, 0.001)
	assert.InDelta(t, 360.0, result.IdealHours, 0.001) // 6 people * 10 days * 6h
	assert.Equal(t, result.IdealHours, result.ActualHours)

	require.Len(t, result.AllMembers, 6)
	for _, m := range result.AllMembers {
		assert.Equal(t, "Available", m.Status)
	}
}

func TestCompute_PublicHolidayAppliesToEveryone(t *testing.T) {
	team := testTeam(6)
	// Only one employee reported the holiday; it must still reduce working
	// days for the whole team.
	entries := []model.LeaveEntry{{
		Employee: team[2],
		Dates:    []time.Time{dates.New(2026, time.January, 6)}, // Tuesday
		Type:     model.LeavePublicHoliday,
	}}

	result := Compute(testSprint(), team, entries, testCfg)

	assert.Equal(t, 9, result.WorkingDays)
	assert.InDelta(t, 100.0, result.CapacityPercent, 0.001)
	assert.Empty(t, result.MembersOnLeave, "public holidays do not flag individuals")

	for _, m := range result.AllMembers {
		assert.Contains(t, m.Status, "public_holiday: Jan 06", "holiday shown for every member")
	}
}

func TestCompute_PlannedLeaveReducesCapacity(t *testing.T) {
	team := testTeam(6)
	entries := []model.LeaveEntry{{
		Employee: team[0],
		Dates: []time.Time{
			dates.New(2026, time.January, 7), // Wednesday
			dates.New(2026, time.January, 8), // Thursday
		},
		Type:        model.LeavePlanned,
		Description: "7,8",
	}}

	result := Compute(testSprint(), team, entries, testCfg)

	assert.Equal(t, 10, result.WorkingDays)
	assert.Equal(t, 5, result.AvailableMembers)
	require.Len(t, result.MembersOnLeave, 1)
	assert.Equal(t, team[0].ID, result.MembersOnLeave[0].Employee.ID)
	assert.Equal(t, "planned: Jan 07-08", result.MembersOnLeave[0].Status)

	// 60 person-days total, 2 on leave: 58/60 of 360 hours.
	assert.InDelta(t, 360.0, result.IdealHours, 0.001)
	assert.InDelta(t, 348.0, result.ActualHours, 0.001)
	assert.InDelta(t, 96.667, result.CapacityPercent, 0.01)
}

func TestCompute_WeekendLeaveIgnored(t *testing.T) {
	team := testTeam(3)
	entries := []model.LeaveEntry{{
		Employee: team[0],
		Dates:    []time.Time{dates.New(2026, time.January, 10)}, // Saturday
		Type:     model.LeavePlanned,
	}}

	result := Compute(testSprint(), team, entries, testCfg)
	// The member is listed on leave but no working person-day is lost.
	assert.Len(t, result.MembersOnLeave, 1)
	assert.InDelta(t, 100.0, result.CapacityPercent, 0.001)
}

func TestCompute_OnCallReducedHours(t *testing.T) {
	team := testTeam(6)
	sprint := testSprint()
	sprint.OnCallPrimary = "Member A"

	result := Compute(sprint, team, nil, testCfg)

	// Regular 5 people: 50 person-days * 6h = 300. On-call: 10 days * 3h = 30.
	assert.InDelta(t, 330.0, result.IdealHours, 0.001)
	assert.InDelta(t, 330.0, result.ActualHours, 0.001)
	assert.InDelta(t, 100.0, result.CapacityPercent, 0.001)
}

func TestCompute_OnCallWorksThroughHolidays(t *testing.T) {
	team := testTeam(6)
	sprint := testSprint()
	sprint.OnCallPrimary = "Member A"

	entries := []model.LeaveEntry{{
		Employee: team[3],
		Dates:    []time.Time{dates.New(2026, time.January, 6)}, // Tuesday holiday
		Type:     model.LeavePublicHoliday,
	}}

	result := Compute(sprint, team, entries, testCfg)

	assert.Equal(t, 9, result.WorkingDays)
	// Regular 5 people: 45 person-days * 6h = 270.
	// On-call keeps all 10 weekdays at 3h = 30.
	assert.InDelta(t, 300.0, result.IdealHours, 0.001)
	assert.InDelta(t, 300.0, result.ActualHours, 0.001)
	assert.InDelta(t, 100.0, result.CapacityPercent, 0.001)
}

func TestCompute_OnCallWithLeave(t *testing.T) {
	team := testTeam(6)
	sprint := testSprint()
	sprint.OnCallPrimary = "Member A"

	entries := []model.LeaveEntry{{
		Employee: team[0],
		Dates:    []time.Time{dates.New(2026, time.January, 12)}, // Monday
		Type:     model.LeavePlanned,
	}}

	result := Compute(sprint, team, entries, testCfg)

	// On-call ideal 10*3=30, actual 9*3=27. Regular 50*6=300 both ways.
	assert.InDelta(t, 330.0, result.IdealHours, 0.001)
	assert.InDelta(t, 327.0, result.ActualHours, 0.001)
	assert.Greater(t, result.CapacityPercent, 0.0)
	assert.LessOrEqual(t, result.CapacityPercent, 100.0)
}

func TestCompute_OnCallNameNotOnRoster(t *testing.T) {
	team := testTeam(6)
	sprint := testSprint()
	sprint.OnCallPrimary = "Nobody Known"

	result := Compute(sprint, team, nil, testCfg)
	// No match: the special case is skipped, not an error.
	assert.InDelta(t, 360.0, result.IdealHours, 0.001)
	assert.InDelta(t, 100.0, result.CapacityPercent, 0.001)
}

func TestCompute_NoEmployees(t *testing.T) {
	result := Compute(testSprint(), nil, nil, testCfg)
	assert.Equal(t, 0, result.TotalMembers)
	assert.InDelta(t, 0.0, result.CapacityPercent, 0.001)
	assert.InDelta(t, 0.0, result.IdealHours, 0.001)
}

func TestCompute_PercentWithinBounds(t *testing.T) {
	team := testTeam(4)
	var entries []model.LeaveEntry
	// Everyone out for the whole sprint.
	for _, emp := range team {
		var ds []time.Time
		for d := dates.New(2026, time.January, 5); !d.After(dates.New(2026, time.January, 18)); d = d.AddDate(0, 0, 1) {
			ds = append(ds, d)
		}
		entries = append(entries, model.LeaveEntry{Employee: emp, Dates: ds, Type: model.LeavePlanned})
	}

	result := Compute(testSprint(), team, entries, testCfg)
	assert.InDelta(t, 0.0, result.CapacityPercent, 0.001)
	assert.GreaterOrEqual(t, result.CapacityPercent, 0.0)
	assert.LessOrEqual(t, result.CapacityPercent, 100.0)
}

func TestCompute_MultipleEntriesSameEmployeeGrouped(t *testing.T) {
	team := testTeam(2)
	entries := []model.LeaveEntry{
		{
			Employee: team[0],
			Dates:    []time.Time{dates.New(2026, time.January, 7)},
			Type:     model.LeavePlanned,
		},
		{
			Employee: team[0],
			Dates:    []time.Time{dates.New(2026, time.January, 8)},
			Type:     model.LeavePlanned,
		},
	}

	result := Compute(testSprint(), team, entries, testCfg)
	require.Len(t, result.MembersOnLeave, 1)
	// Dates from both entries merge into one formatted run.
	assert.Equal(t, "planned: Jan 07-08", result.MembersOnLeave[0].Status)
}
