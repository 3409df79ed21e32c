package dates

import (
	"sort"
	"strings"
	"time"
)

// FormatRanges collapses a list of dates into a compact comma-separated
// string, merging consecutive days into ranges.
//
//	[Feb 16, Feb 17, Feb 18, Feb 20, Feb 21] -> "Feb 16-18, Feb 20-21"
//
// A run that crosses a month boundary repeats the month on the tail
// ("Jan 30-Feb 02"). Empty input returns "".
func FormatRanges(in []time.Time) string {
	if len(in) == 0 {
		return ""
	}

	sorted := make([]time.Time, len(in))
	copy(sorted, in)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var segments []string
	runStart := sorted[0]
	runEnd := sorted[0]

	flush := func() {
		segments = append(segments, formatRun(runStart, runEnd))
	}

	for _, d := range sorted[1:] {
		if d.Equal(runEnd) {
			continue
		}
		if d.Equal(runEnd.AddDate(0, 0, 1)) {
			runEnd = d
			continue
		}
		flush()
		runStart = d
		runEnd = d
	}
	flush()

	return strings.Join(segments, ", ")
}

func formatRun(start, end time.Time) string {
	if start.Equal(end) {
		return start.Format("Jan 02")
	}
	if start.Month() == end.Month() && start.Year() == end.Year() {
		return start.Format("Jan 02") + "-" + end.Format("02")
	}
	return start.Format("Jan 02") + "-" + end.Format("Jan 02")
}
