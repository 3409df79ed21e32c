// Package services orchestrates the capacity analysis pipeline: reading the
// spreadsheet, parsing leave and on-call data, generating the sprint window
// and computing per-sprint capacity.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finaspirants/sprintcap/internal/config"
	"github.com/finaspirants/sprintcap/pkg/core/capacity"
	"github.com/finaspirants/sprintcap/pkg/core/model"
	"github.com/finaspirants/sprintcap/pkg/core/sheet"
	"github.com/finaspirants/sprintcap/pkg/core/sprint"
)

// SpreadsheetSource yields raw cell rows from the capacity workbook.
type SpreadsheetSource interface {
	// LeaveRows returns the rows of the leave sheet.
	LeaveRows() ([][]string, error)
	// OnCallRows returns the rows of the on-call sheet, or nil when the
	// workbook has no such sheet.
	OnCallRows() ([][]string, error)
}

// AnalysisResult is the full outcome of one capacity run.
type AnalysisResult struct {
	RunID        string
	GeneratedAt  time.Time
	Employees    []model.Employee
	LeaveEntries []model.LeaveEntry
	OnCall       []model.OnCallSchedule
	Capacities   []model.SprintCapacity
}

// RunAnalysis executes the capacity pipeline for the sprint window around
// now. A missing or empty on-call sheet degrades to an analysis without
// on-call adjustments; an empty leave sheet is an error.
func RunAnalysis(ctx context.Context, src SpreadsheetSource, cfg *config.Config, logger *zap.Logger, now time.Time) (*AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	logger.Info("Starting capacity analysis", zap.String("runId", runID))

	leaveRows, err := src.LeaveRows()
	if err != nil {
		return nil, fmt.Errorf("failed to read leave sheet: %w", err)
	}

	parsed := sheet.ParseLeaveSheet(leaveRows, now, logger)
	if len(parsed.Employees) == 0 {
		return nil, fmt.Errorf("leave sheet yielded no employees: %w", ErrNoData)
	}
	logger.Info("Parsed leave sheet",
		zap.Int("employees", len(parsed.Employees)),
		zap.Int("leaveEntries", len(parsed.LeaveEntries)),
	)

	var schedules []model.OnCallSchedule
	onCallRows, err := src.OnCallRows()
	if err != nil {
		// On-call data is an enhancement, not a requirement.
		logger.Warn("Failed to read on-call sheet, continuing without it", zap.Error(err))
	} else if len(onCallRows) > 0 {
		schedules = sheet.ParseOnCallSheet(onCallRows, now, logger)
		logger.Info("Parsed on-call sheet", zap.Int("schedules", len(schedules)))
	}

	anchor, err := cfg.SprintAnchor()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sprint anchor: %w", err)
	}

	window := sprint.Window(now, anchor, cfg.SprintDurationDays, schedules)
	if len(window) == 0 {
		return nil, fmt.Errorf("no sprints generated for %s: %w", now.Format("2006-01-02"), ErrNoData)
	}

	capCfg := capacity.Config{
		HoursPerDay:     cfg.HoursPerDay,
		OnCallReduction: cfg.OnCallPrimaryHoursReduction,
	}

	capacities := make([]model.SprintCapacity, 0, len(window))
	for _, s := range window {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c := capacity.Compute(s, parsed.Employees, parsed.LeaveEntries, capCfg)
		logger.Debug("Computed sprint capacity",
			zap.Int("sprint", s.Number),
			zap.Float64("percent", c.CapacityPercent),
		)
		capacities = append(capacities, c)
	}

	logger.Info("Capacity analysis complete",
		zap.String("runId", runID),
		zap.Int("sprints", len(capacities)),
	)

	return &AnalysisResult{
		RunID:        runID,
		GeneratedAt:  now,
		Employees:    parsed.Employees,
		LeaveEntries: parsed.LeaveEntries,
		OnCall:       schedules,
		Capacities:   capacities,
	}, nil
}
