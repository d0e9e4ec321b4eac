package csvops

import (
	"strings"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/types"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/utils"
)

// NormalizeName canonicalizes a raw name for comparison: trim, collapse internal
// whitespace runs to a single space, upper-case. Blank input yields "".
func NormalizeName(raw string) string {
	return strings.ToUpper(utils.WhitespaceTrimmer(raw))
}

// NormalizeColumn normalizes column idx of every row. The result has one entry per row,
// in row order; short rows contribute "" for the missing cell.
func NormalizeColumn(tbl types.TableData, idx int) []string {
	out := make([]string, len(tbl.Rows))
	for i, row := range tbl.Rows {
		out[i] = NormalizeName(utils.CellAt(row, idx))
	}
	return out
}
