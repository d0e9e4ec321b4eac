package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/sheet"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/types"
	"github.com/spf13/cobra"
)

func (a *app) toJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tojson FILE",
		Short: "Convert one sheet to table JSON",
		Long: `Convert one sheet of a spreadsheet to {"hasHeader","header","rows"} JSON.

Without --out the JSON is written next to FILE with a .json extension; "-" writes to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheetSel, _ := cmd.Flags().GetString("sheet")
			outPath, _ := cmd.Flags().GetString("out")

			loaded, err := sheet.Load(sheet.Input{Name: args[0], Sheet: sheetSel}, sheet.Options{Charset: a.cfg.Charset})
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".json"
			}
			if outPath == "-" {
				return encodeTable(cmd.OutOrStdout(), loaded.Table)
			}

			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create JSON: %w", err)
			}
			defer out.Close()

			if err := encodeTable(out, loaded.Table); err != nil {
				return err
			}
			a.log.WithField("rows", loaded.Table.Len()).Debug("converted sheet")
			fmt.Fprintf(cmd.OutOrStdout(), "Converted %s [%s] to %s\n", args[0], loaded.Sheet, outPath)
			return nil
		},
	}
	cmd.Flags().String("sheet", "", "sheet to convert (name or 0-based index, default first)")
	cmd.Flags().String("out", "", `output path, or "-" for stdout`)
	return cmd
}

func encodeTable(w io.Writer, tbl types.TableData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tbl)
}
