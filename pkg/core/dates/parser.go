// Package dates parses and formats the free-text day-of-month strings found
// in the capacity sheet ("16 to 27", "1st, 4th, 15th", "19,20,23").
package dates

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Range expressions are matched first ("16 to 27", "16-27", with optional
// ordinal suffixes), then removed from the text so their endpoints are not
// re-matched as standalone days.
var rangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)?\s+to\s+(\d{1,2})(?:st|nd|rd|th)?`),
	regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)?\s*-\s*(\d{1,2})(?:st|nd|rd|th)?`),
}

var dayPattern = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)?`)

// New returns the given calendar date at midnight UTC.
func New(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDayList extracts calendar dates from a free-text cell value for the
// given month and year. The result is deduplicated and sorted ascending.
//
// Bad tokens and invalid calendar days (e.g. Feb 30) are skipped silently;
// this parser never fails on malformed input, it just returns fewer dates.
func ParseDayList(text string, month time.Month, year int) []time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	seen := make(map[time.Time]bool)
	var out []time.Time

	add := func(day int) {
		if day < 1 || day > 31 {
			return
		}
		d := New(year, month, day)
		// time.Date normalizes overflow (Feb 30 -> Mar 2), so an invalid
		// day for this month will not round-trip.
		if d.Day() != day || d.Month() != month {
			return
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}

	for _, pattern := range rangePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			start, err1 := strconv.Atoi(m[1])
			end, err2 := strconv.Atoi(m[2])
			if err1 != nil || err2 != nil {
				continue
			}
			if start < 1 || start > 31 || end < 1 || end > 31 {
				continue
			}
			for day := start; day <= end; day++ {
				add(day)
			}
		}
		text = pattern.ReplaceAllString(text, "")
	}

	for _, m := range dayPattern.FindAllStringSubmatch(text, -1) {
		day, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		add(day)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
