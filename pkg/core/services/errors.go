package services

import "errors"

// Sentinel errors callers can test with errors.Is.
var (
	// ErrSourceMissing indicates the spreadsheet file does not exist.
	ErrSourceMissing = errors.New("spreadsheet source not found")

	// ErrMalformedSource indicates the spreadsheet exists but cannot be read.
	ErrMalformedSource = errors.New("spreadsheet source is malformed")

	// ErrNoData indicates the spreadsheet was read but contained no
	// recognizable employee rows.
	ErrNoData = errors.New("no employee data found in spreadsheet")
)
