package csvops

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/types"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/utils"
)

// Defaults for the NRIC roster comparison.
const (
	DefaultNameColumn   = "Full Name As Per NRIC"
	DefaultSerialColumn = "S/N"
	AddedSheetName      = "New_in_Excel_B"
	RemovedSheetName    = "Removed_from_Excel_A"
	OperationCompare    = "compare"
)

// --- request/response types for compare ---

type CompareRequest struct {
	Operation string          `json:"operation"`
	Options   CompareOptions  `json:"options"`
	Datasets  CompareDatasets `json:"datasets"`
}

type CompareOptions struct {
	NameColumn   string `json:"name_column"`   // defaults to DefaultNameColumn
	SerialColumn string `json:"serial_column"` // defaults to DefaultSerialColumn
}

type CompareDatasets struct {
	Old types.TableData `json:"old"` // Excel A, baseline
	New types.TableData `json:"new"` // Excel B, list to compare
}

type CompareSummary struct {
	OldRows    int   `json:"old_rows" yaml:"old_rows"`
	NewRows    int   `json:"new_rows" yaml:"new_rows"`
	Added      int   `json:"added" yaml:"added"`
	Removed    int   `json:"removed" yaml:"removed"`
	DurationMS int64 `json:"duration_ms" yaml:"duration_ms"`
}

type CompareResponse struct {
	Operation string          `json:"operation"`
	Summary   CompareSummary  `json:"summary"`
	Added     types.TableData `json:"added"`   // serial-numbered rows of New
	Removed   types.TableData `json:"removed"` // serial-numbered rows of Old
	Error     *string         `json:"error"`

	// raw subsets before numbering, used for previews
	diff DiffResult
}

// --- Core function ---

// Compare diffs the two datasets on the name column and numbers both result tables.
// On a missing column the response carries the message and err is *MissingColumnError.
func Compare(req CompareRequest) (CompareResponse, error) {
	var res CompareResponse
	res.Operation = req.Operation
	if res.Operation == "" {
		res.Operation = OperationCompare
	}
	start := time.Now()

	nameCol := req.Options.NameColumn
	if strings.TrimSpace(nameCol) == "" {
		nameCol = DefaultNameColumn
	}
	serialCol := req.Options.SerialColumn
	if strings.TrimSpace(serialCol) == "" {
		serialCol = DefaultSerialColumn
	}

	diff, err := Diff(req.Datasets.Old, req.Datasets.New, nameCol)
	if err != nil {
		return resWithErr(res, err.Error()), err
	}

	res.diff = diff
	res.Added = AddSerialNumber(diff.Added, serialCol)
	res.Removed = AddSerialNumber(diff.Removed, serialCol)
	res.Summary = CompareSummary{
		OldRows:    req.Datasets.Old.Len(),
		NewRows:    req.Datasets.New.Len(),
		Added:      diff.Added.Len(),
		Removed:    diff.Removed.Len(),
		DurationMS: time.Since(start).Milliseconds(),
	}
	res.Error = nil
	return res, nil
}

// ResultTables returns the two export tables in workbook order: added, then removed.
// Empty names fall back to AddedSheetName and RemovedSheetName.
func (r CompareResponse) ResultTables(addedName, removedName string) []types.NamedTable {
	if addedName == "" {
		addedName = AddedSheetName
	}
	if removedName == "" {
		removedName = RemovedSheetName
	}
	return []types.NamedTable{
		{Name: addedName, Table: r.Added},
		{Name: removedName, Table: r.Removed},
	}
}

// Preview restricts the unnumbered added/removed rows to the given column, mirroring the
// name-only result preview. Missing cells read as "".
func (r CompareResponse) Preview(column string) (added, removed []string) {
	return columnValues(r.diff.Added, column), columnValues(r.diff.Removed, column)
}

// --- helpers ---
func resWithErr(r CompareResponse, msg string) CompareResponse {
	r.Error = &msg
	return r
}

func columnValues(tbl types.TableData, column string) []string {
	out := make([]string, 0, len(tbl.Rows))
	idx, ok := utils.ColumnIndex(tbl, column)
	if !ok {
		return out
	}
	for _, row := range tbl.Rows {
		out = append(out, utils.CellAt(row, idx))
	}
	return out
}

// Decode helper if you receive raw JSON bytes
func DecodeCompareRequest(data []byte) (CompareRequest, error) {
	var req CompareRequest
	err := json.Unmarshal(data, &req)
	return req, err
}
