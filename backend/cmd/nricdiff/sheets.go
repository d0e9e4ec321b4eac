package main

import (
	"fmt"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/sheet"
	"github.com/spf13/cobra"
)

func (a *app) sheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets FILE...",
		Short: "List the sheets of one or more spreadsheets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				wb, err := sheet.OpenFile(path, sheet.Options{Charset: a.cfg.Charset})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s (%s)\n", path, wb.Format)
				for i, name := range wb.SheetNames() {
					fmt.Fprintf(out, "  %d: %s\n", i, name)
				}
				if err := wb.Close(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
