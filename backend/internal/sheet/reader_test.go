package sheet_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/sheet"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file string
		want sheet.Format
	}{
		{"a.xlsx", sheet.FormatXLSX},
		{"A.XLSX", sheet.FormatXLSX},
		{"macro.xlsm", sheet.FormatXLSX},
		{"legacy.xls", sheet.FormatXLS},
		{"dir/list.csv", sheet.FormatCSV},
	}
	for _, test := range tests {
		got, err := sheet.DetectFormat(test.file)
		require.NoError(t, err, test.file)
		assert.Equal(t, test.want, got, test.file)
	}

	_, err := sheet.DetectFormat("notes.txt")
	require.ErrorIs(t, err, sheet.ErrUnsupportedFormat)
}

func TestOpenXLSX(t *testing.T) {
	t.Parallel()

	data := testutil.XLSX(t,
		testutil.Sheet{Name: "Cover", Rows: [][]interface{}{{"nothing here"}}},
		testutil.Sheet{Name: "Vendors", Rows: [][]interface{}{
			{"No", "Full Name As Per NRIC", "", "Company"},
			{1, "Alice Tan", "x", "Acme"},
			{2, "Bob Lee"},
		}},
	)

	wb, err := sheet.Open(bytes.NewReader(data), "vendors.xlsx", sheet.Options{})
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, sheet.FormatXLSX, wb.Format)
	assert.Equal(t, []string{"Cover", "Vendors"}, wb.SheetNames())

	t.Run("first sheet by default", func(t *testing.T) {
		name, err := wb.ResolveSheet("")
		require.NoError(t, err)
		assert.Equal(t, "Cover", name)
	})

	t.Run("by name", func(t *testing.T) {
		tbl, err := wb.ReadSheet("Vendors")
		require.NoError(t, err)
		assert.True(t, tbl.HasHeader)
		assert.Equal(t, []string{"No", "Full Name As Per NRIC", "Unnamed: 2", "Company"}, tbl.Header)
		assert.Equal(t, [][]string{
			{"1", "Alice Tan", "x", "Acme"},
			{"2", "Bob Lee", "", ""},
		}, tbl.Rows)
	})

	t.Run("by index", func(t *testing.T) {
		tbl, err := wb.ReadSheet("1")
		require.NoError(t, err)
		assert.Len(t, tbl.Rows, 2)
	})

	t.Run("unknown sheet", func(t *testing.T) {
		_, err := wb.ReadSheet("Missing")
		require.ErrorIs(t, err, sheet.ErrSheetNotFound)

		var pe *sheet.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "vendors.xlsx", pe.File)
		assert.Equal(t, "Missing", pe.Sheet)
	})
}

func TestOpenXLSXEmptySheet(t *testing.T) {
	t.Parallel()

	data := testutil.XLSX(t, testutil.Sheet{Name: "Blank"})
	wb, err := sheet.Open(bytes.NewReader(data), "blank.xlsx", sheet.Options{})
	require.NoError(t, err)
	defer wb.Close()

	_, err = wb.ReadSheet("")
	require.ErrorIs(t, err, sheet.ErrEmptySheet)
}

func TestReadSheetSkipsBlankRows(t *testing.T) {
	t.Parallel()

	data := testutil.XLSX(t, testutil.Sheet{Name: "Vendors", Rows: [][]interface{}{
		{},
		{"Full Name As Per NRIC", "Company"},
		{"Alice Tan", "Acme"},
		{},
		{"", ""},
		{"Bob Lee"},
		{},
	}})
	wb, err := sheet.Open(bytes.NewReader(data), "vendors.xlsx", sheet.Options{})
	require.NoError(t, err)
	defer wb.Close()

	tbl, err := wb.ReadSheet("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Full Name As Per NRIC", "Company"}, tbl.Header)
	assert.Equal(t, [][]string{{"Alice Tan", "Acme"}, {"Bob Lee", ""}}, tbl.Rows)
}

func TestOpenRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		data []byte
	}{
		{name: "unknown extension", file: "list.pdf", data: []byte("%PDF")},
		{name: "corrupt xlsx", file: "list.xlsx", data: []byte("not a zip")},
		{name: "corrupt xls", file: "list.xls", data: []byte("not a compound document")},
		{name: "bad charset", file: "list.csv", data: []byte("a\n")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			opts := sheet.Options{}
			if test.name == "bad charset" {
				opts.Charset = "no-such-charset"
			}
			_, err := sheet.Open(bytes.NewReader(test.data), test.file, opts)
			require.Error(t, err)

			var pe *sheet.ParseError
			require.True(t, errors.As(err, &pe), "got %T: %v", err, err)
			assert.Equal(t, test.file, pe.File)
		})
	}
}

func TestOpenCSV(t *testing.T) {
	t.Parallel()

	t.Run("utf-8 with BOM", func(t *testing.T) {
		t.Parallel()

		data := []byte("\ufeffFull Name As Per NRIC,Company\nAlice Tan,Acme\nBob Lee\n")
		wb, err := sheet.Open(bytes.NewReader(data), "/tmp/roster.csv", sheet.Options{})
		require.NoError(t, err)
		defer wb.Close()

		assert.Equal(t, []string{"roster"}, wb.SheetNames())
		tbl, err := wb.ReadSheet("")
		require.NoError(t, err)
		assert.Equal(t, []string{"Full Name As Per NRIC", "Company"}, tbl.Header)
		assert.Equal(t, [][]string{{"Alice Tan", "Acme"}, {"Bob Lee", ""}}, tbl.Rows)
	})

	t.Run("windows-1252", func(t *testing.T) {
		t.Parallel()

		// "José" with é encoded as 0xE9
		data := []byte("Full Name As Per NRIC\nJos\xe9 Tan\n")
		wb, err := sheet.Open(bytes.NewReader(data), "latin.csv", sheet.Options{Charset: "windows-1252"})
		require.NoError(t, err)
		defer wb.Close()

		tbl, err := wb.ReadSheet("")
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"José Tan"}}, tbl.Rows)
	})
}

func TestOpenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "list.csv")
	require.NoError(t, os.WriteFile(path, []byte("Full Name As Per NRIC\nAlice Tan\n"), 0o600))

	wb, err := sheet.OpenFile(path, sheet.Options{})
	require.NoError(t, err)
	defer wb.Close()
	assert.Equal(t, sheet.FormatCSV, wb.Format)

	_, err = sheet.OpenFile(filepath.Join(t.TempDir(), "missing.xlsx"), sheet.Options{})
	require.ErrorIs(t, err, os.ErrNotExist)
}
