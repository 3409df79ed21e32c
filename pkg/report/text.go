package report

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/finaspirants/sprintcap/pkg/core/model"
)

// Text renders the plain-text capacity report.
func Text(capacities []model.SprintCapacity, generatedAt time.Time, opts Options) string {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	b.WriteString(rule + "\n")
	b.WriteString("SPRINT CAPACITY REPORT\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Generated on: %s\n", generatedAt.Format("2006-01-02 15:04:05")))

	totalMembers := 0
	if len(capacities) > 0 {
		totalMembers = capacities[0].TotalMembers
	}
	b.WriteString(fmt.Sprintf("Total Team Members: %d\n\n", totalMembers))

	for _, c := range capacities {
		writeSprintSection(&b, c, opts)
	}

	return b.String()
}

func writeSprintSection(b *strings.Builder, c model.SprintCapacity, opts Options) {
	s := c.Sprint
	b.WriteString(fmt.Sprintf("SPRINT %d\n", AbsoluteSprintNumber(s.Start, opts)))
	b.WriteString(fmt.Sprintf("Period: %s to %s\n", s.Start.Format("2006-01-02"), s.End.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Working Days: %d\n", c.WorkingDays))
	b.WriteString(fmt.Sprintf("Team Members: %d\n", c.TotalMembers))
	b.WriteString(fmt.Sprintf("Team Capacity: %.1f%%\n", c.CapacityPercent))
	b.WriteString(fmt.Sprintf("Ideal Capacity: %.1f hours\n", c.IdealHours))
	b.WriteString(fmt.Sprintf("Actual Capacity: %.1f hours\n", c.ActualHours))

	if s.OnCallPrimary != "" || s.OnCallSecondary != "" {
		b.WriteString(fmt.Sprintf("On-Call Primary: %s\n", s.OnCallPrimary))
		b.WriteString(fmt.Sprintf("On-Call Secondary: %s\n", s.OnCallSecondary))
	}

	b.WriteString("\nTeam Member Status:\n\n")

	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Emp Id\tEmp Name\tPlanned Leave\tHoliday")
	for _, row := range splitStatuses(c.AllMembers) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			row.Employee.ID, row.Employee.Name, row.PlannedLeave, row.Holiday)
	}
	tw.Flush()

	b.WriteString(strings.Repeat("-", 40) + "\n\n")
}
