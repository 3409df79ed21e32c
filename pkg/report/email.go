package report

import (
	"fmt"
	"time"

	"github.com/finaspirants/sprintcap/pkg/core/model"
)

// emailWindowSize is the minimum analysis window needed to pick the two
// upcoming sprints out of [previous, current, next, next+1].
const emailWindowSize = 4

// Subject returns the email subject line for a report generated at the
// given time.
func Subject(generatedAt time.Time) string {
	return fmt.Sprintf("Sprint Capacity Report - %s", generatedAt.Format("2006-01-02"))
}

// Email renders the HTML email body covering the two upcoming sprints. The
// analysis window must hold at least four sprints.
func Email(capacities []model.SprintCapacity, generatedAt time.Time, opts Options) (string, error) {
	if len(capacities) < emailWindowSize {
		return "", fmt.Errorf("email body needs %d sprints, got %d", emailWindowSize, len(capacities))
	}

	upcoming := capacities[2:4]
	labels := []string{"Next Sprint", "Next Sprint +1"}

	view := htmlView{
		Generated:    generatedAt.Format("2006-01-02"),
		TotalMembers: upcoming[0].TotalMembers,
		SprintsShown: "Next 2",
	}
	for i, c := range upcoming {
		view.Sprints = append(view.Sprints, toHTMLSprint(c, labels[i], opts))
	}

	return renderHTML(view)
}
