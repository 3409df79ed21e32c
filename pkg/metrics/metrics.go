// Package metrics provides Prometheus observability metrics for the
// capacity analysis pipeline and the web dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/finaspirants/sprintcap/pkg/core/services"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// AnalysisRunsTotal counts completed analysis runs by outcome.
var AnalysisRunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sprintcap",
	Name:      "analysis_runs_total",
	Help:      "Total capacity analysis runs by outcome",
}, []string{"outcome"})

// AnalysisDurationSeconds tracks time taken by one full analysis run,
// spreadsheet read included.
var AnalysisDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "sprintcap",
	Name:      "analysis_duration_seconds",
	Help:      "Time taken to run a full capacity analysis",
	Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
})

// EmployeesParsed tracks the roster size from the latest run.
var EmployeesParsed = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "sprintcap",
	Name:      "employees_parsed",
	Help:      "Number of employees parsed from the latest spreadsheet read",
})

// LeaveEntriesParsed tracks leave entries from the latest run.
var LeaveEntriesParsed = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "sprintcap",
	Name:      "leave_entries_parsed",
	Help:      "Number of leave entries parsed from the latest spreadsheet read",
})

// OnCallSchedulesParsed tracks on-call rows from the latest run.
var OnCallSchedulesParsed = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "sprintcap",
	Name:      "oncall_schedules_parsed",
	Help:      "Number of on-call schedules parsed from the latest spreadsheet read",
})

// SprintCapacityPercent tracks the computed capacity of each sprint in the
// latest analysis window.
var SprintCapacityPercent = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "sprintcap",
	Name:      "sprint_capacity_percent",
	Help:      "Computed team capacity percentage per sprint in the latest window",
}, []string{"sprint"})

// EmailsSentTotal counts report emails by outcome.
var EmailsSentTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sprintcap",
	Name:      "emails_sent_total",
	Help:      "Total report emails sent by outcome",
}, []string{"outcome"})

// ObserveResult records the gauges for a completed analysis.
func ObserveResult(result *services.AnalysisResult) {
	EmployeesParsed.Set(float64(len(result.Employees)))
	LeaveEntriesParsed.Set(float64(len(result.LeaveEntries)))
	OnCallSchedulesParsed.Set(float64(len(result.OnCall)))

	SprintCapacityPercent.Reset()
	for _, c := range result.Capacities {
		SprintCapacityPercent.WithLabelValues(c.Sprint.Start.Format("2006-01-02")).Set(c.CapacityPercent)
	}
}
