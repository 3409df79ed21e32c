// Package excelclient reads the capacity workbook through excelize and
// exposes its sheets as raw rows.
package excelclient

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/finaspirants/sprintcap/pkg/core/services"
)

// onCallSheetName is the fixed name of the on-call rotation sheet.
const onCallSheetName = "On Call Schedules"

// Workbook is an open capacity spreadsheet. It implements
// services.SpreadsheetSource.
type Workbook struct {
	file       *excelize.File
	leaveSheet string
}

// Open opens the workbook at path and selects the leave sheet: the
// configured name when present, otherwise a sheet named after the current
// year, otherwise the first sheet.
func Open(path, configuredSheet string, now time.Time) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", services.ErrSourceMissing, path)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrMalformedSource, err)
	}

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		file.Close()
		return nil, fmt.Errorf("%w: workbook has no sheets", services.ErrMalformedSource)
	}

	return &Workbook{
		file:       file,
		leaveSheet: selectLeaveSheet(sheets, configuredSheet, now),
	}, nil
}

// LeaveSheet returns the name of the selected leave sheet.
func (w *Workbook) LeaveSheet() string {
	return w.leaveSheet
}

// LeaveRows returns the rows of the leave sheet.
func (w *Workbook) LeaveRows() ([][]string, error) {
	rows, err := w.file.GetRows(w.leaveSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", w.leaveSheet, err)
	}
	return rows, nil
}

// OnCallRows returns the rows of the on-call sheet, or nil when the
// workbook has none.
func (w *Workbook) OnCallRows() ([][]string, error) {
	idx, err := w.file.GetSheetIndex(onCallSheetName)
	if err != nil || idx < 0 {
		return nil, nil
	}

	rows, err := w.file.GetRows(onCallSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", onCallSheetName, err)
	}
	return rows, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

func selectLeaveSheet(sheets []string, configured string, now time.Time) string {
	if configured != "" {
		for _, s := range sheets {
			if s == configured {
				return s
			}
		}
	}

	year := strconv.Itoa(now.Year())
	for _, s := range sheets {
		if s == year {
			return s
		}
	}

	return sheets[0]
}
