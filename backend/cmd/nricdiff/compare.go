package main

import (
	"fmt"
	"os"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/config"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/pipeline"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/report"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/sheet"
	"github.com/spf13/cobra"
)

func (a *app) compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare Excel A (old) against Excel B (new)",
		Long: `Compare two spreadsheets and export the added and removed rows.

Supported inputs: .xlsx, .xlsm, .xls and .csv. Without --old-sheet/--new-sheet the
first sheet of each file is used; a sheet may be given by name or 0-based position.

Example:
  nricdiff compare --old vendors_2024.xlsx --new vendors_2025.xlsx
  nricdiff compare --old a.xls --old-sheet Vendors --new b.xlsx --preview
  nricdiff compare --old a.csv --new b.csv --no-export --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			oldPath, _ := cmd.Flags().GetString("old")
			newPath, _ := cmd.Flags().GetString("new")
			oldSheet, _ := cmd.Flags().GetString("old-sheet")
			newSheet, _ := cmd.Flags().GetString("new-sheet")
			format, _ := cmd.Flags().GetString("format")
			preview, _ := cmd.Flags().GetBool("preview")
			noExport, _ := cmd.Flags().GetBool("no-export")

			if oldPath == "" || newPath == "" {
				return fmt.Errorf("--old and --new are required: upload both Excel files to compare")
			}

			res, err := pipeline.Run(cmd.Context(), a.cfg, a.log,
				sheet.Input{Name: oldPath, Sheet: oldSheet},
				sheet.Input{Name: newPath, Sheet: newSheet},
				pipeline.Options{SkipExport: noExport},
			)
			if err != nil {
				return err
			}

			rep := res.Report(a.cfg.NameColumn, preview)
			if !noExport {
				if err := os.WriteFile(a.cfg.Output, res.Workbook, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", a.cfg.Output, err)
				}
				rep.Output = a.cfg.Output
				rep.OutputBytes = len(res.Workbook)
			}

			return report.Write(cmd.OutOrStdout(), rep, format)
		},
	}

	d := config.Default()
	cmd.Flags().String("old", "", "baseline spreadsheet (Excel A)")
	cmd.Flags().String("new", "", "spreadsheet to compare (Excel B)")
	cmd.Flags().String("old-sheet", "", "sheet of Excel A (name or 0-based index)")
	cmd.Flags().String("new-sheet", "", "sheet of Excel B (name or 0-based index)")
	cmd.Flags().StringP("output", "o", d.Output, "result workbook path")
	cmd.Flags().StringP("format", "f", report.FormatText, "report format: text, json, yaml")
	cmd.Flags().Bool("preview", false, "list the added and removed names")
	cmd.Flags().Bool("no-export", false, "only report, do not write the result workbook")
	a.bind(cmd.Flags().Lookup("output"), config.KeyOutput)

	return cmd
}
