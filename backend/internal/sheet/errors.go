package sheet

import (
	"errors"
	"fmt"
)

// Spreadsheet errors.
var (
	// ErrUnsupportedFormat indicates a file extension no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

	// ErrSheetNotFound indicates the selected sheet does not exist in the workbook.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrEmptySheet indicates a sheet with no header row.
	ErrEmptySheet = errors.New("sheet is empty")

	// ErrNoSheets indicates a workbook without any worksheet.
	ErrNoSheets = errors.New("workbook has no sheets")

	// ErrNoTables indicates an export request without any table.
	ErrNoTables = errors.New("no tables to export")

	// ErrDuplicateSheetName indicates two tables map to the same (truncated) sheet name.
	ErrDuplicateSheetName = errors.New("duplicate sheet name")
)

// ParseError wraps any failure to read an input spreadsheet.
type ParseError struct {
	File  string
	Sheet string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("cannot read sheet %q of %s: %v", e.Sheet, e.File, e.Err)
	}
	return fmt.Sprintf("cannot read %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(file, sheet string, err error) error {
	return &ParseError{File: file, Sheet: sheet, Err: err}
}
