package sheet

import (
	"context"
	"io"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/types"
	"golang.org/x/sync/errgroup"
)

// Input names one spreadsheet and the sheet to read from it.
type Input struct {
	Name   string        // file name; its extension selects the reader
	Sheet  string        // "" selects the first sheet
	Reader io.ReadSeeker // when nil, Name is read from disk
}

// Loaded is a parsed input together with the sheet that was actually read.
type Loaded struct {
	Sheet string
	Table types.TableData
}

// Load opens one input and reads its selected sheet.
func Load(in Input, opts Options) (Loaded, error) {
	var (
		wb  *Workbook
		err error
	)
	if in.Reader != nil {
		wb, err = Open(in.Reader, in.Name, opts)
	} else {
		wb, err = OpenFile(in.Name, opts)
	}
	if err != nil {
		return Loaded{}, err
	}
	defer wb.Close()

	name, err := wb.ResolveSheet(in.Sheet)
	if err != nil {
		return Loaded{}, err
	}
	tbl, err := wb.ReadSheet(name)
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{Sheet: name, Table: tbl}, nil
}

// LoadPair reads the baseline and the updated input concurrently. Each result is an
// independent table. The first failure is returned.
func LoadPair(ctx context.Context, oldIn, newIn Input, opts Options) (Loaded, Loaded, error) {
	var oldL, newL Loaded

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l, err := Load(oldIn, opts)
		if err != nil {
			return err
		}
		oldL = l
		return ctx.Err()
	})
	g.Go(func() error {
		l, err := Load(newIn, opts)
		if err != nil {
			return err
		}
		newL = l
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return Loaded{}, Loaded{}, err
	}
	return oldL, newL, nil
}
