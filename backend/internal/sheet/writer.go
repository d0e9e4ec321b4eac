package sheet

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/types"
	"github.com/xuri/excelize/v2"
)

// MaxSheetNameLength is the longest sheet name the xlsx format accepts.
const MaxSheetNameLength = 31

// ContentTypeXLSX is the MIME type of the exported workbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultSheet = "Sheet1"

// WriteOptions tunes cell encoding.
type WriteOptions struct {
	// IntColumns lists column positions whose cells are written as integers when they parse.
	IntColumns []int
}

// TruncateSheetName cuts name to MaxSheetNameLength characters.
func TruncateSheetName(name string) string {
	r := []rune(name)
	if len(r) <= MaxSheetNameLength {
		return name
	}
	return string(r[:MaxSheetNameLength])
}

// WriteWorkbook writes one sheet per table, in order: header row, then data rows.
// Values are written as literals; nothing is ever stored as a formula.
// Sheet names are compared case-insensitively, as excelize and Excel do.
func WriteWorkbook(w io.Writer, tables []types.NamedTable, opts WriteOptions) error {
	if len(tables) == 0 {
		return ErrNoTables
	}

	f := excelize.NewFile()
	defer f.Close()

	seen := make(map[string]struct{}, len(tables))
	for i, t := range tables {
		name := TruncateSheetName(t.Name)
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateSheetName, name)
		}
		seen[key] = struct{}{}

		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", name, err)
		}

		if err := writeTable(f, name, t.Table, opts); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WorkbookBytes is WriteWorkbook into memory.
func WorkbookBytes(tables []types.NamedTable, opts WriteOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, tables, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTable(f *excelize.File, sheet string, tbl types.TableData, opts WriteOptions) error {
	intCols := make(map[int]bool, len(opts.IntColumns))
	for _, c := range opts.IntColumns {
		intCols[c] = true
	}

	header := make([]interface{}, len(tbl.Header))
	for i, h := range tbl.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", sheet, err)
	}

	for r, row := range tbl.Rows {
		cells := make([]interface{}, len(row))
		for c, v := range row {
			cells[c] = v
			if intCols[c] {
				if n, err := strconv.Atoi(v); err == nil {
					cells[c] = n
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", r+1, sheet, err)
		}
	}
	return nil
}
