package types

// Shared types used across csvops, sheet, report and the shells.

type TableData struct {
	HasHeader bool       `json:"hasHeader" yaml:"hasHeader"`
	Header    []string   `json:"header" yaml:"header"`
	Rows      [][]string `json:"rows" yaml:"rows"`
}

// NamedTable pairs a table with the name it is exported under (sheet name).
type NamedTable struct {
	Name  string    `json:"name" yaml:"name"`
	Table TableData `json:"table" yaml:"table"`
}

// Len is the number of data rows (header excluded).
func (t TableData) Len() int { return len(t.Rows) }
