package sheet

import (
	"fmt"
	"io"

	"github.com/extrame/xls"
)

type xlsSource struct {
	wb     *xls.WorkBook
	names  []string
	sheets map[string]*xls.WorkSheet
}

func openXLS(r io.ReadSeeker, charset string) (src source, err error) {
	// extrame/xls panics on some malformed BIFF streams.
	defer func() {
		if rec := recover(); rec != nil {
			src, err = nil, fmt.Errorf("malformed xls: %v", rec)
		}
	}()

	if charset == "" {
		charset = "utf-8"
	}
	wb, err := xls.OpenReader(r, charset)
	if err != nil {
		return nil, err
	}

	s := &xlsSource{wb: wb, sheets: map[string]*xls.WorkSheet{}}
	for i := 0; i < wb.NumSheets(); i++ {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		s.names = append(s.names, ws.Name)
		s.sheets[ws.Name] = ws
	}
	return s, nil
}

func (s *xlsSource) sheetNames() []string { return s.names }

func (s *xlsSource) rows(sheet string) (out [][]string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("malformed xls sheet: %v", rec)
		}
	}()

	ws, ok := s.sheets[sheet]
	if !ok {
		return nil, ErrSheetNotFound
	}

	out = make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := ws.Row(i)
		if row == nil {
			out = append(out, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			cells = append(cells, row.Col(j))
		}
		out = append(out, cells)
	}
	return out, nil
}

func (s *xlsSource) close() error { return nil }
