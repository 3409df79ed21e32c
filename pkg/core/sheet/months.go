package sheet

import (
	"regexp"
	"strings"
	"time"
)

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var yearPattern = regexp.MustCompile(`(20\d{2})`)

// monthByName resolves an exact month name or abbreviation, case-insensitive.
func monthByName(s string) (time.Month, bool) {
	m, ok := monthNames[strings.ToLower(strings.TrimSpace(s))]
	return m, ok
}

// monthInText finds a month name anywhere inside the text.
func monthInText(s string) (time.Month, bool) {
	lower := strings.ToLower(s)
	for name, m := range monthNames {
		if strings.Contains(lower, name) {
			return m, true
		}
	}
	return 0, false
}

// inferYear applies the near-future assumption: a month earlier than the
// real-world current month is taken to mean next year. Sheets describing
// past months of the current year will be shifted forward by this.
func inferYear(month time.Month, now time.Time) int {
	if month < now.Month() {
		return now.Year() + 1
	}
	return now.Year()
}
