package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

const utf8BOM = "\ufeff"

// csvSource exposes a CSV file as a workbook with a single sheet.
type csvSource struct {
	name string
	data [][]string
}

func openCSV(r io.Reader, name, charset string) (source, error) {
	if charset != "" && !strings.EqualFold(charset, "utf-8") && !strings.EqualFold(charset, "utf8") {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
		}
		r = enc.NewDecoder().Reader(r)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	data, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(data) > 0 && len(data[0]) > 0 {
		data[0][0] = strings.TrimPrefix(data[0][0], utf8BOM)
	}
	return &csvSource{name: name, data: data}, nil
}

func (s *csvSource) sheetNames() []string { return []string{s.name} }

func (s *csvSource) rows(sheet string) ([][]string, error) {
	if sheet != s.name {
		return nil, ErrSheetNotFound
	}
	return s.data, nil
}

func (s *csvSource) close() error { return nil }
