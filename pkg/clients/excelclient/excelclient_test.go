package excelclient

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/finaspirants/sprintcap/pkg/core/services"
)

var testNow = time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)

// writeWorkbook creates an xlsx with the given sheets, filling the first
// sheet with a minimal leave layout.
func writeWorkbook(t *testing.T, sheets []string, withOnCall bool) string {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheets[0]))
	for _, name := range sheets[1:] {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}

	require.NoError(t, f.SetSheetRow(sheets[0], "A1", &[]interface{}{"Emp Id", "Name", "February"}))
	require.NoError(t, f.SetSheetRow(sheets[0], "A2", &[]interface{}{"1001", "Anand Kumar", "16,17"}))

	if withOnCall {
		_, err := f.NewSheet("On Call Schedules")
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("On Call Schedules", "A1",
			&[]interface{}{"Year", "Month", "From Date", "To date", "Primary", "Secondary"}))
		require.NoError(t, f.SetSheetRow("On Call Schedules", "A2",
			&[]interface{}{"2026", "February", "10", "23", "Priya Nair", "Anand Kumar"}))
	}

	path := filepath.Join(t.TempDir(), "capacity.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.xlsx"), "", testNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrSourceMissing))
}

func TestOpen_NotASpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a workbook"), 0644))

	_, err := Open(path, "", testNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrMalformedSource))
}

func TestOpen_ConfiguredSheetPreferred(t *testing.T) {
	path := writeWorkbook(t, []string{"Team Leaves", "2026"}, false)

	wb, err := Open(path, "2026", testNow)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, "2026", wb.LeaveSheet())
}

func TestOpen_YearSheetFallback(t *testing.T) {
	path := writeWorkbook(t, []string{"Old Stuff", "2026"}, false)

	wb, err := Open(path, "Missing Sheet", testNow)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, "2026", wb.LeaveSheet())
}

func TestOpen_FirstSheetFallback(t *testing.T) {
	path := writeWorkbook(t, []string{"Team Leaves", "Notes"}, false)

	wb, err := Open(path, "", testNow)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, "Team Leaves", wb.LeaveSheet())
}

func TestLeaveRows(t *testing.T) {
	path := writeWorkbook(t, []string{"2026"}, false)

	wb, err := Open(path, "", testNow)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.LeaveRows()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 2)
	assert.Equal(t, "Emp Id", rows[0][0])
	assert.Equal(t, "Anand Kumar", rows[1][1])
}

func TestOnCallRows(t *testing.T) {
	path := writeWorkbook(t, []string{"2026"}, true)

	wb, err := Open(path, "", testNow)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.OnCallRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Priya Nair", rows[1][4])
}

func TestOnCallRows_SheetAbsent(t *testing.T) {
	path := writeWorkbook(t, []string{"2026"}, false)

	wb, err := Open(path, "", testNow)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.OnCallRows()
	require.NoError(t, err)
	assert.Nil(t, rows)
}
