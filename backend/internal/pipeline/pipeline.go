package pipeline

import (
	"context"
	"fmt"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/config"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/csvops"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/report"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/sheet"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// Result is one finished comparison run.
type Result struct {
	Old      report.Input
	New      report.Input
	Response csvops.CompareResponse
	Workbook []byte // nil when export was skipped
}

// Options selects what a run produces.
type Options struct {
	SkipExport bool
}

// Run loads both inputs, compares them and, unless skipped, renders the result workbook.
// Any error stops the run; no workbook is produced for a failed comparison.
func Run(ctx context.Context, cfg config.Config, log logrus.FieldLogger, oldIn, newIn sheet.Input, opts Options) (Result, error) {
	readOpts := sheet.Options{Charset: cfg.Charset}

	oldL, newL, err := sheet.LoadPair(ctx, oldIn, newIn, readOpts)
	if err != nil {
		return Result{}, err
	}
	log.WithFields(logrus.Fields{
		"old_file": oldIn.Name, "old_sheet": oldL.Sheet, "old_rows": oldL.Table.Len(),
		"new_file": newIn.Name, "new_sheet": newL.Sheet, "new_rows": newL.Table.Len(),
	}).Debug("loaded inputs")

	resp, err := csvops.Compare(csvops.CompareRequest{
		Operation: csvops.OperationCompare,
		Options: csvops.CompareOptions{
			NameColumn:   cfg.NameColumn,
			SerialColumn: cfg.SerialColumn,
		},
		Datasets: csvops.CompareDatasets{Old: oldL.Table, New: newL.Table},
	})
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Old:      report.Input{File: oldIn.Name, Sheet: oldL.Sheet},
		New:      report.Input{File: newIn.Name, Sheet: newL.Sheet},
		Response: resp,
	}
	log.WithFields(logrus.Fields{
		"added":   resp.Summary.Added,
		"removed": resp.Summary.Removed,
	}).Info("comparison finished")

	if opts.SkipExport {
		return res, nil
	}

	// the injected S/N is always the leading column
	tables := resp.ResultTables(cfg.AddedSheet, cfg.RemovedSheet)
	data, err := sheet.WorkbookBytes(tables, sheet.WriteOptions{IntColumns: []int{0}})
	if err != nil {
		return Result{}, fmt.Errorf("failed to export comparison: %w", err)
	}
	res.Workbook = data
	log.WithField("size", humanize.Bytes(uint64(len(data)))).Debug("rendered workbook")

	return res, nil
}

// Report converts a result into the user-facing report.
func (r Result) Report(nameColumn string, preview bool) report.Report {
	added, removed := r.Response.Preview(nameColumn)
	rep := report.Report{
		Old:     r.Old,
		New:     r.New,
		Summary: r.Response.Summary,
		Preview: preview,
	}
	if preview {
		rep.Added = added
		rep.Removed = removed
	}
	return rep
}
