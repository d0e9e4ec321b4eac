package sheet

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/types"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/utils"
)

// Format identifies the container a workbook was read from.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatCSV  Format = "csv"
)

// Options tunes how inputs are decoded.
type Options struct {
	// Charset names the text encoding of .csv and .xls inputs ("" means UTF-8).
	Charset string
}

// source is implemented once per container format.
type source interface {
	sheetNames() []string
	rows(sheet string) ([][]string, error)
	close() error
}

// Workbook is an opened spreadsheet whose sheets can be listed and read as tables.
type Workbook struct {
	Name   string
	Format Format
	src    source
}

// DetectFormat maps a file name to a Format by extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// Open reads a workbook from r, picking the reader by filename's extension.
func Open(r io.ReadSeeker, filename string, opts Options) (*Workbook, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, parseErr(filename, "", err)
	}

	var src source
	switch format {
	case FormatXLSX:
		src, err = openXLSX(r)
	case FormatXLS:
		src, err = openXLS(r, opts.Charset)
	case FormatCSV:
		src, err = openCSV(r, sheetNameFromFile(filename), opts.Charset)
	}
	if err != nil {
		return nil, parseErr(filename, "", err)
	}
	if len(src.sheetNames()) == 0 {
		_ = src.close()
		return nil, parseErr(filename, "", ErrNoSheets)
	}

	return &Workbook{Name: filename, Format: format, src: src}, nil
}

// OpenFile reads the whole file into memory and opens it.
func OpenFile(path string, opts Options) (*Workbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Open(bytes.NewReader(data), path, opts)
}

// SheetNames lists the sheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return append([]string(nil), w.src.sheetNames()...)
}

// ResolveSheet maps a selection to a sheet name: "" picks the first sheet, an exact
// name picks itself, otherwise a numeric string is taken as a 0-based position.
func (w *Workbook) ResolveSheet(selection string) (string, error) {
	names := w.src.sheetNames()
	if selection == "" {
		return names[0], nil
	}
	for _, n := range names {
		if n == selection {
			return n, nil
		}
	}
	if idx, ok := utils.ParseIndexString(selection); ok && idx < len(names) {
		return names[idx], nil
	}
	return "", parseErr(w.Name, selection, fmt.Errorf("%w (available: %s)", ErrSheetNotFound, strings.Join(names, ", ")))
}

// ReadSheet parses the selected sheet. Fully blank rows are skipped, the first remaining
// row is the header, and every data row is padded to the header width so a missing cell
// reads as "".
func (w *Workbook) ReadSheet(selection string) (types.TableData, error) {
	name, err := w.ResolveSheet(selection)
	if err != nil {
		return types.TableData{}, err
	}
	raw, err := w.src.rows(name)
	if err != nil {
		return types.TableData{}, parseErr(w.Name, name, err)
	}
	raw = dropBlankRows(raw)
	if len(raw) == 0 {
		return types.TableData{}, parseErr(w.Name, name, ErrEmptySheet)
	}
	return buildTable(raw), nil
}

// Close releases the underlying reader.
func (w *Workbook) Close() error {
	return w.src.close()
}

func buildTable(raw [][]string) types.TableData {
	width := 0
	for _, r := range raw {
		if len(r) > width {
			width = len(r)
		}
	}

	header := make([]string, width)
	for i := range header {
		header[i] = utils.CellAt(raw[0], i)
		if header[i] == "" {
			header[i] = fmt.Sprintf("Unnamed: %d", i)
		}
	}

	rows := make([][]string, 0, len(raw)-1)
	for _, r := range raw[1:] {
		row := make([]string, width)
		copy(row, r)
		rows = append(rows, row)
	}

	return types.TableData{HasHeader: true, Header: header, Rows: rows}
}

func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, r := range rows {
		if !isBlankRow(r) {
			out = append(out, r)
		}
	}
	return out
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

func sheetNameFromFile(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
