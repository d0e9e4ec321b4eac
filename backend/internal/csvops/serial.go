package csvops

import (
	"strconv"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/types"
)

// AddSerialNumber returns a copy of tbl with serialColumn prepended and rows numbered
// 1..N in their current order. No row is dropped or reordered.
func AddSerialNumber(tbl types.TableData, serialColumn string) types.TableData {
	header := make([]string, 0, len(tbl.Header)+1)
	header = append(header, serialColumn)
	header = append(header, tbl.Header...)

	rows := make([][]string, 0, len(tbl.Rows))
	for i, r := range tbl.Rows {
		row := make([]string, 0, len(r)+1)
		row = append(row, strconv.Itoa(i+1))
		row = append(row, r...)
		rows = append(rows, row)
	}

	return types.TableData{
		HasHeader: true,
		Header:    header,
		Rows:      rows,
	}
}
