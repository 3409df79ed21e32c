package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/finaspirants/sprintcap/pkg/core/model"
)

type htmlSprint struct {
	Number          int
	Label           string
	Period          string
	WorkingDays     int
	TotalMembers    int
	Percent         string
	Class           string
	IdealHours      string
	ActualHours     string
	OnCallPrimary   string
	OnCallSecondary string
	HasOnCall       bool
	Members         []memberLeave
}

type htmlView struct {
	Generated    string
	TotalMembers int
	SprintsShown string
	Sprints      []htmlSprint
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Sprint Capacity Report</title>
    <style>
        body { font-family: 'Segoe UI', Arial, sans-serif; background: #f4f6f8; margin: 0; padding: 20px; color: #2d3436; }
        .report-container { max-width: 900px; margin: 0 auto; background: #fff; border-radius: 8px; box-shadow: 0 2px 8px rgba(0,0,0,0.08); overflow: hidden; }
        .header { background: #2c5f8a; color: #fff; padding: 24px 32px; }
        .header h1 { margin: 0; font-size: 24px; }
        .header-subtitle { opacity: 0.85; margin-top: 4px; }
        .info-grid { width: 100%; border-collapse: collapse; }
        .info-item { padding: 16px 32px; border-bottom: 1px solid #e4e8eb; }
        .info-label { font-size: 12px; text-transform: uppercase; color: #8395a7; }
        .info-value { font-size: 18px; font-weight: 600; }
        .content { padding: 24px 32px; }
        .sprint-section { margin-bottom: 32px; }
        .sprint-title { font-size: 18px; font-weight: 600; padding-bottom: 8px; border-bottom: 2px solid #2c5f8a; }
        .metrics-grid { width: 100%; border-collapse: separate; border-spacing: 8px; margin: 12px 0; }
        .metric-card { background: #f8f9fa; border-radius: 6px; padding: 12px; text-align: center; }
        .metric-label { font-size: 11px; text-transform: uppercase; color: #8395a7; }
        .metric-value { font-size: 20px; font-weight: 600; margin-top: 4px; }
        .capacity.good { color: #27ae60; }
        .capacity.warning { color: #e67e22; }
        .capacity.critical { color: #c0392b; }
        .team-table { width: 100%; border-collapse: collapse; margin-top: 12px; }
        .team-table th { background: #2c5f8a; color: #fff; padding: 8px 12px; text-align: left; font-size: 13px; }
        .team-table td { padding: 8px 12px; border-bottom: 1px solid #e4e8eb; font-size: 14px; }
        .team-table tr.on-leave { background: #fdf3e6; }
        .leave-badge { display: inline-block; padding: 2px 8px; border-radius: 10px; font-size: 12px; }
        .leave-planned { background: #fdebd0; color: #b9770e; }
        .leave-holiday { background: #d6eaf8; color: #21618c; }
    </style>
</head>
<body>
    <div class="report-container">
        <div class="header">
            <h1>Sprint Capacity Report</h1>
            <div class="header-subtitle">Finance Aspirants Team - Sprint Planning</div>
        </div>
        <table class="info-grid">
            <tr>
                <td class="info-item"><div class="info-label">Generated</div><div class="info-value">{{.Generated}}</div></td>
                <td class="info-item"><div class="info-label">Team Members</div><div class="info-value">{{.TotalMembers}}</div></td>
                <td class="info-item"><div class="info-label">Sprints Shown</div><div class="info-value">{{.SprintsShown}}</div></td>
            </tr>
        </table>
        <div class="content">
{{range .Sprints}}
            <div class="sprint-section">
                <div class="sprint-title">Sprint {{.Number}}{{if .Label}} - {{.Label}}{{end}} ({{.Period}})</div>
                <table class="metrics-grid">
                    <tr>
                        <td class="metric-card"><div class="metric-label">Working Days</div><div class="metric-value">{{.WorkingDays}}</div></td>
                        <td class="metric-card"><div class="metric-label">Team Members</div><div class="metric-value">{{.TotalMembers}}</div></td>
                        <td class="metric-card"><div class="metric-label">Team Capacity</div><div class="metric-value capacity {{.Class}}">{{.Percent}}%</div></td>
                        <td class="metric-card"><div class="metric-label">Ideal Capacity</div><div class="metric-value">{{.IdealHours}} hrs</div></td>
                        <td class="metric-card"><div class="metric-label">Actual Capacity</div><div class="metric-value">{{.ActualHours}} hrs</div></td>
                    </tr>
{{if .HasOnCall}}
                    <tr>
                        <td class="metric-card" colspan="2"><div class="metric-label">On-Call Primary</div><div class="metric-value">{{.OnCallPrimary}}</div></td>
                        <td class="metric-card" colspan="3"><div class="metric-label">On-Call Secondary</div><div class="metric-value">{{.OnCallSecondary}}</div></td>
                    </tr>
{{end}}
                </table>
                <table class="team-table">
                    <thead>
                        <tr><th>Emp ID</th><th>Employee Name</th><th>Planned Leave</th><th>Holiday</th></tr>
                    </thead>
                    <tbody>
{{range .Members}}
                        <tr{{if .OnLeave}} class="on-leave"{{end}}>
                            <td>{{.Employee.ID}}</td>
                            <td>{{.Employee.Name}}</td>
                            <td>{{if eq .PlannedLeave "-"}}-{{else}}<span class="leave-badge leave-planned">{{.PlannedLeave}}</span>{{end}}</td>
                            <td>{{if eq .Holiday "-"}}-{{else}}<span class="leave-badge leave-holiday">{{.Holiday}}</span>{{end}}</td>
                        </tr>
{{end}}
                    </tbody>
                </table>
            </div>
{{end}}
        </div>
    </div>
</body>
</html>
`))

// HTML renders the full HTML capacity report.
func HTML(capacities []model.SprintCapacity, generatedAt time.Time, opts Options) (string, error) {
	view := htmlView{
		Generated:    generatedAt.Format("2006-01-02"),
		SprintsShown: fmt.Sprintf("%d", len(capacities)),
	}
	if len(capacities) > 0 {
		view.TotalMembers = capacities[0].TotalMembers
	}

	for _, c := range capacities {
		view.Sprints = append(view.Sprints, toHTMLSprint(c, "", opts))
	}

	return renderHTML(view)
}

func toHTMLSprint(c model.SprintCapacity, label string, opts Options) htmlSprint {
	s := c.Sprint
	return htmlSprint{
		Number:          AbsoluteSprintNumber(s.Start, opts),
		Label:           label,
		Period:          fmt.Sprintf("%s - %s", s.Start.Format("Jan 02"), s.End.Format("Jan 02, 2006")),
		WorkingDays:     c.WorkingDays,
		TotalMembers:    c.TotalMembers,
		Percent:         fmt.Sprintf("%.1f", c.CapacityPercent),
		Class:           capacityClass(c.CapacityPercent),
		IdealHours:      fmt.Sprintf("%.1f", c.IdealHours),
		ActualHours:     fmt.Sprintf("%.1f", c.ActualHours),
		OnCallPrimary:   orDash(s.OnCallPrimary),
		OnCallSecondary: orDash(s.OnCallSecondary),
		HasOnCall:       s.OnCallPrimary != "" || s.OnCallSecondary != "",
		Members:         splitStatuses(c.AllMembers),
	}
}

func renderHTML(view htmlView) (string, error) {
	var b strings.Builder
	if err := htmlTemplate.Execute(&b, view); err != nil {
		return "", fmt.Errorf("failed to render HTML report: %w", err)
	}
	return b.String(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
