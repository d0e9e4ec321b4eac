package utils

import (
	"strconv"
	"strings"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/types"
)

// WhitespaceTrimmer removes leading/trailing whitespace and collapses internal whitespace.
func WhitespaceTrimmer(s string) string {
	// strings.Fields will collapse all whitespace runs into single spaces
	parts := strings.Fields(s)
	return strings.Join(parts, " ")
}

// ColumnIndex returns the position of the header cell that equals name exactly.
// No trimming or case folding: "Full Name As Per NRIC" only matches itself.
func ColumnIndex(tbl types.TableData, name string) (int, bool) {
	for i, h := range tbl.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// CellAt returns row[idx], or "" when the row is shorter than idx (a missing cell).
func CellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ParseIndexString parses a non-negative column index such as "0" or "3".
func ParseIndexString(s string) (int, bool) {
	idx, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || idx < 0 {
		return -1, false
	}
	return idx, true
}
