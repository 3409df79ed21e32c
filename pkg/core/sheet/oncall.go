package sheet

import (
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/finaspirants/sprintcap/pkg/core/dates"
	"github.com/finaspirants/sprintcap/pkg/core/model"
)

// Expected column names in the on-call schedule sheet header row.
var onCallFields = []string{
	"Year",
	"Month",
	"From Date",
	"To date",
	"Primary",
	"Secondary",
}

var firstIntPattern = regexp.MustCompile(`(\d+)`)

// ParseOnCallSheet parses the on-call schedule table. Each row yields one
// schedule; rows that cannot be parsed are logged and skipped so a single
// bad row never aborts the run. A nil or empty input yields no schedules.
func ParseOnCallSheet(rows [][]string, now time.Time, logger *zap.Logger) []model.OnCallSchedule {
	if len(rows) == 0 {
		return nil
	}

	idx := onCallColumnIndexes(rows[0])

	var schedules []model.OnCallSchedule
	for i := 1; i < len(rows); i++ {
		row := rows[i]

		sched, ok := parseOnCallRow(row, idx, now)
		if !ok {
			logger.Warn("Skipping unparseable on-call row",
				zap.Int("row", i),
				zap.Strings("cells", row))
			continue
		}

		schedules = append(schedules, sched)
		logger.Debug("Parsed on-call schedule",
			zap.Time("start", sched.Start),
			zap.Time("end", sched.End),
			zap.String("primary", sched.Primary),
			zap.String("secondary", sched.Secondary))
	}

	logger.Info("On-call sheet parsed", zap.Int("schedules", len(schedules)))
	return schedules
}

// onCallColumnIndexes resolves field positions from the header row, falling
// back to the conventional column order for any missing name.
func onCallColumnIndexes(header []string) map[string]int {
	idx := make(map[string]int, len(onCallFields))
	for pos, field := range onCallFields {
		idx[field] = pos
	}
	for pos := range header {
		val := cell(header, pos)
		for _, field := range onCallFields {
			if val == field {
				idx[field] = pos
			}
		}
	}
	return idx
}

// parseOnCallRow builds one schedule from a row. The from/to cells are free
// text; the first integer found is the day ("31st" -> 31). When the to-day
// is numerically before the from-day the period rolls into the next month,
// and from December into January of the next year.
func parseOnCallRow(row []string, idx map[string]int, now time.Time) (model.OnCallSchedule, bool) {
	year := now.Year()
	if y, err := strconv.Atoi(cell(row, idx["Year"])); err == nil {
		year = y
	}

	month, ok := monthByName(cell(row, idx["Month"]))
	if !ok {
		return model.OnCallSchedule{}, false
	}

	fromDay, ok := firstInt(cell(row, idx["From Date"]))
	if !ok {
		return model.OnCallSchedule{}, false
	}

	toDay, ok := firstInt(cell(row, idx["To date"]))
	if !ok {
		toDay = fromDay
	}

	toMonth := month
	toYear := year
	if toDay < fromDay {
		if month == time.December {
			toMonth = time.January
			toYear = year + 1
		} else {
			toMonth = month + 1
		}
	}

	start := dates.New(year, month, fromDay)
	end := dates.New(toYear, toMonth, toDay)
	// time.Date normalizes invalid days (Sep 31 -> Oct 1); reject rows whose
	// day numbers do not round-trip.
	if start.Day() != fromDay || start.Month() != month || end.Day() != toDay || end.Month() != toMonth {
		return model.OnCallSchedule{}, false
	}
	if end.Before(start) {
		return model.OnCallSchedule{}, false
	}

	return model.OnCallSchedule{
		Start:     start,
		End:       end,
		Primary:   cell(row, idx["Primary"]),
		Secondary: cell(row, idx["Secondary"]),
	}, true
}

func firstInt(s string) (int, bool) {
	m := firstIntPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}
