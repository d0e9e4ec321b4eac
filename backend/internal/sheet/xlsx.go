package sheet

import (
	"io"

	"github.com/xuri/excelize/v2"
)

type xlsxSource struct {
	f *excelize.File
}

func openXLSX(r io.Reader) (source, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	return &xlsxSource{f: f}, nil
}

func (s *xlsxSource) sheetNames() []string { return s.f.GetSheetList() }

// rows returns formatted cell values; trailing empty cells of a row are omitted.
func (s *xlsxSource) rows(sheet string) ([][]string, error) {
	return s.f.GetRows(sheet)
}

func (s *xlsxSource) close() error { return s.f.Close() }
