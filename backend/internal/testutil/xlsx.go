// Package testutil builds spreadsheet fixtures for tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Sheet is one fixture worksheet; the first row is usually the header.
type Sheet struct {
	Name string
	Rows [][]interface{}
}

// XLSX builds an in-memory workbook with the given sheets in order.
func XLSX(t testing.TB, sheets ...Sheet) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.Name))
		} else {
			_, err := f.NewSheet(s.Name)
			require.NoError(t, err)
		}
		for r, row := range s.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			row := row
			require.NoError(t, f.SetSheetRow(s.Name, cell, &row))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

// WriteXLSX writes a fixture workbook into dir and returns its path.
func WriteXLSX(t testing.TB, dir, name string, sheets ...Sheet) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, XLSX(t, sheets...), 0o600))
	return path
}

// Roster is a single-column sheet under the given header.
func Roster(sheetName, header string, names ...string) Sheet {
	rows := [][]interface{}{{header}}
	for _, n := range names {
		rows = append(rows, []interface{}{n})
	}
	return Sheet{Name: sheetName, Rows: rows}
}

// ReadXLSX opens workbook bytes and returns every sheet's rows by name.
func ReadXLSX(t testing.TB, data []byte) ([]string, map[string][][]string) {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	out := map[string][][]string{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		require.NoError(t, err)
		out[name] = rows
	}
	return f.GetSheetList(), out
}
