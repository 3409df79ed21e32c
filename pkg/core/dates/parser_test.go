package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayList_Ranges(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		month time.Month
		year  int
		want  []int
	}{
		{"to range", "16 to 27", time.February, 2026, []int{16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27}},
		{"hyphen range", "16-18", time.February, 2026, []int{16, 17, 18}},
		{"range with ordinals", "1st to 3rd", time.March, 2026, []int{1, 2, 3}},
		{"range with surrounding text", "on leave 5-7 (approved)", time.June, 2026, []int{5, 6, 7}},
		{"single day range", "9 to 9", time.April, 2026, []int{9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDayList(tt.text, tt.month, tt.year)
			require.Len(t, got, len(tt.want))
			for i, day := range tt.want {
				assert.Equal(t, New(tt.year, tt.month, day), got[i])
			}
		})
	}
}

func TestParseDayList_StandaloneDays(t *testing.T) {
	got := ParseDayList("1st, 4th, 15th", time.January, 2026)
	require.Len(t, got, 3)
	assert.Equal(t, New(2026, time.January, 1), got[0])
	assert.Equal(t, New(2026, time.January, 4), got[1])
	assert.Equal(t, New(2026, time.January, 15), got[2])
}

func TestParseDayList_CommaSeparated(t *testing.T) {
	got := ParseDayList("19,20,23", time.February, 2026)
	require.Len(t, got, 3)
	assert.Equal(t, New(2026, time.February, 19), got[0])
	assert.Equal(t, New(2026, time.February, 20), got[1])
	assert.Equal(t, New(2026, time.February, 23), got[2])
}

func TestParseDayList_EmptyInput(t *testing.T) {
	assert.Empty(t, ParseDayList("", time.February, 2026))
	assert.Empty(t, ParseDayList("   ", time.February, 2026))
	assert.Empty(t, ParseDayList("no numbers here", time.February, 2026))
}

func TestParseDayList_InvalidCalendarDaysSkipped(t *testing.T) {
	// Feb 2026 has 28 days; 29 and 30 are silently dropped, not errors.
	got := ParseDayList("27 to 30", time.February, 2026)
	require.Len(t, got, 2)
	assert.Equal(t, New(2026, time.February, 27), got[0])
	assert.Equal(t, New(2026, time.February, 28), got[1])

	assert.Empty(t, ParseDayList("30", time.February, 2026))
}

func TestParseDayList_LeapYear(t *testing.T) {
	got := ParseDayList("28 to 30", time.February, 2028)
	require.Len(t, got, 2)
	assert.Equal(t, New(2028, time.February, 28), got[0])
	assert.Equal(t, New(2028, time.February, 29), got[1])
}

func TestParseDayList_RangeEndpointsNotDuplicated(t *testing.T) {
	// The range is removed from the text before the standalone pass, so its
	// endpoints must not be re-emitted.
	got := ParseDayList("16 to 18", time.February, 2026)
	assert.Len(t, got, 3)
}

func TestParseDayList_MixedRangeAndSingles(t *testing.T) {
	got := ParseDayList("2nd, 16 to 18, 25", time.February, 2026)
	require.Len(t, got, 5)
	want := []int{2, 16, 17, 18, 25}
	for i, day := range want {
		assert.Equal(t, New(2026, time.February, day), got[i])
	}
}

func TestParseDayList_SortedAndDeduplicated(t *testing.T) {
	got := ParseDayList("23, 19, 20, 19", time.February, 2026)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Before(got[i]), "dates must be ascending")
	}
}

func TestParseDayList_OutOfRangeNumbers(t *testing.T) {
	assert.Empty(t, ParseDayList("0", time.February, 2026))
	assert.Empty(t, ParseDayList("32", time.January, 2026))
	assert.Empty(t, ParseDayList("99", time.January, 2026))
}
