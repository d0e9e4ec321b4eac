package csvops

import (
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/types"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/utils"
)

// DiffResult holds the rows of new whose name is absent from old (Added) and the rows of
// old whose name is absent from new (Removed). Both keep their source header and order.
type DiffResult struct {
	Added   types.TableData `json:"added"`
	Removed types.TableData `json:"removed"`
}

// Diff compares oldTbl and newTbl on nameColumn. It fails with *MissingColumnError before
// looking at any row if either header lacks the column.
func Diff(oldTbl, newTbl types.TableData, nameColumn string) (DiffResult, error) {
	if nameColumn == "" {
		return DiffResult{}, ErrNameColumnRequired
	}

	oldIdx, oldOK := utils.ColumnIndex(oldTbl, nameColumn)
	newIdx, newOK := utils.ColumnIndex(newTbl, nameColumn)
	if !oldOK || !newOK {
		missing := &MissingColumnError{Column: nameColumn}
		if !oldOK {
			missing.Datasets = append(missing.Datasets, DatasetOld)
		}
		if !newOK {
			missing.Datasets = append(missing.Datasets, DatasetNew)
		}
		return DiffResult{}, missing
	}

	oldKeys := NormalizeColumn(oldTbl, oldIdx)
	newKeys := NormalizeColumn(newTbl, newIdx)

	oldSet := NewKeySet(oldKeys)
	newSet := NewKeySet(newKeys)

	return DiffResult{
		Added:   filterRows(newTbl, newKeys, newSet.Minus(oldSet)),
		Removed: filterRows(oldTbl, oldKeys, oldSet.Minus(newSet)),
	}, nil
}

// filterRows keeps, in source order, every row whose key is in keep. Rows are copied.
func filterRows(tbl types.TableData, keys []string, keep KeySet) types.TableData {
	rows := make([][]string, 0, len(keep))
	for i, row := range tbl.Rows {
		if keep.Has(keys[i]) {
			rows = append(rows, append([]string(nil), row...))
		}
	}
	return types.TableData{
		HasHeader: tbl.HasHeader,
		Header:    append([]string(nil), tbl.Header...),
		Rows:      rows,
	}
}
