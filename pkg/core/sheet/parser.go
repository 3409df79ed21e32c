// Package sheet converts the raw rows of the capacity spreadsheet into the
// domain model. The sheet groups data rows into month sections, each opened
// by a separator row (month name in the month column) and a header row
// (sentinel "Emp Id" in the identifier column).
package sheet

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/finaspirants/sprintcap/pkg/core/dates"
	"github.com/finaspirants/sprintcap/pkg/core/model"
)

const (
	idCol    = 0
	nameCol  = 1
	monthCol = 2 // third column carries the month name on separator/header rows

	headerSentinel = "Emp Id"
)

// Cell values that are header labels leaking into data rows; never dates.
var sentinelValues = map[string]bool{
	"Public Holiday":   true,
	"Optional Holiday": true,
	"Planned Leave":    true,
	"Holiday":          true,
	"Opting?":          true,
	"GCC Holiday":      true,
	"NA":               true,
	"No":               true,
	"Yes":              true,
}

var affirmatives = map[string]bool{"yes": true, "y": true, "true": true}

// ParseResult holds the collections extracted from the leave sheet.
type ParseResult struct {
	Employees    []model.Employee
	LeaveEntries []model.LeaveEntry
}

// scanState is the accumulator threaded through the row scan: the current
// month section and the column-position -> header-text mapping captured from
// the most recent header row.
type scanState struct {
	month   time.Month // 0 until a section is established
	year    int
	headers map[int]string
}

// ParseLeaveSheet scans the leave sheet rows and extracts employees and
// leave entries. Rows that are neither separator, header, nor valid data are
// skipped without error; if no month section is ever established the
// real-world current month of now is used.
func ParseLeaveSheet(rows [][]string, now time.Time, logger *zap.Logger) ParseResult {
	state := scanState{headers: make(map[int]string)}

	var employees []model.Employee
	byID := make(map[string]int)
	var entries []model.LeaveEntry

	for _, row := range rows {
		idVal := cell(row, idCol)

		switch {
		case isSeparatorRow(idVal, row):
			state = applySeparator(state, row, now, logger)

		case idVal == headerSentinel:
			state = applyHeader(state, row, now, logger)

		case isEmployeeID(idVal):
			emp := model.Employee{ID: idVal, Name: cell(row, nameCol)}
			if i, ok := byID[emp.ID]; ok {
				emp = employees[i]
			} else {
				byID[emp.ID] = len(employees)
				employees = append(employees, emp)
			}
			entries = append(entries, rowEntries(state, row, emp, now)...)
		}
	}

	logger.Info("Leave sheet parsed",
		zap.Int("employees", len(employees)),
		zap.Int("leave_entries", len(entries)))

	return ParseResult{Employees: employees, LeaveEntries: entries}
}

// isSeparatorRow matches month-section separators: a non-data identifier
// cell with an exact month name in the month column.
func isSeparatorRow(idVal string, row []string) bool {
	if isEmployeeID(idVal) {
		return false
	}
	_, ok := monthByName(cell(row, monthCol))
	return ok
}

func applySeparator(state scanState, row []string, now time.Time, logger *zap.Logger) scanState {
	month, _ := monthByName(cell(row, monthCol))
	state.month = month
	state.year = inferYear(month, now)
	logger.Debug("Month separator found",
		zap.String("month", month.String()),
		zap.Int("year", state.year))
	return state
}

// applyHeader captures the column -> header-text mapping and, unless the
// header text is a "planned leave" label, re-derives the month section from
// it. A 4-digit year in the header overrides the inferred year.
func applyHeader(state scanState, row []string, now time.Time, logger *zap.Logger) scanState {
	headers := make(map[int]string, len(state.headers))
	for k, v := range state.headers {
		headers[k] = v
	}
	for i := range row {
		val := cell(row, i)
		if val != "" && val != headerSentinel && val != "Emp Name" {
			headers[i] = val
		}
	}
	state.headers = headers

	monthHeader := cell(row, monthCol)
	if strings.Contains(strings.ToLower(monthHeader), "planned") {
		return state
	}

	if month, ok := monthInText(monthHeader); ok {
		state.month = month
		if m := yearPattern.FindString(monthHeader); m != "" {
			state.year, _ = strconv.Atoi(m)
		} else {
			state.year = inferYear(month, now)
		}
		logger.Debug("Month section found in header",
			zap.String("header", monthHeader),
			zap.String("month", month.String()),
			zap.Int("year", state.year))
	}
	return state
}

// rowEntries extracts leave entries from a single data row using the current
// scan state. Optional-holiday columns only count when the employee's
// "Opting?" cell is affirmative.
func rowEntries(state scanState, row []string, emp model.Employee, now time.Time) []model.LeaveEntry {
	month := state.month
	year := state.year
	if month == 0 {
		month = now.Month()
		year = now.Year()
	}

	opting := isOptingIn(state, row)

	var entries []model.LeaveEntry
	for i := range row {
		if i == idCol || i == nameCol {
			continue
		}
		val := cell(row, i)
		if val == "" || sentinelValues[val] {
			continue
		}

		leaveType := classifyColumn(state.headers[i])
		if leaveType == model.LeaveOptionalHoliday && !opting {
			continue
		}

		leaveDates := dates.ParseDayList(val, month, year)
		if len(leaveDates) == 0 {
			continue
		}
		entries = append(entries, model.LeaveEntry{
			Employee:    emp,
			Dates:       leaveDates,
			Type:        leaveType,
			Description: val,
		})
	}
	return entries
}

// classifyColumn maps a column's header text to a leave type by keyword.
func classifyColumn(header string) model.LeaveType {
	lower := strings.ToLower(header)
	switch {
	case strings.Contains(lower, "gcc") || strings.Contains(lower, "public"):
		return model.LeavePublicHoliday
	case strings.Contains(lower, "optional") && strings.Contains(lower, "holiday"):
		return model.LeaveOptionalHoliday
	case strings.Contains(lower, "holiday"):
		return model.LeavePublicHoliday
	default:
		return model.LeavePlanned
	}
}

func isOptingIn(state scanState, row []string) bool {
	for i, header := range state.headers {
		if strings.Contains(strings.ToLower(header), "opting") {
			return affirmatives[strings.ToLower(cell(row, i))]
		}
	}
	return false
}

func isEmployeeID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// cell returns the trimmed value at index i, or "" when the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
