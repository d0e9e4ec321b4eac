package main

import (
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/config"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/server"
	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload/compare/download HTTP API",
		Long: `Serve the comparison over HTTP.

Endpoints:
  GET  /healthz
  POST /api/sheets    multipart "file"; lists its sheets
  POST /api/compare   multipart "file_a", "file_b", optional "sheet_a", "sheet_b";
                      returns the summary and name preview, or the workbook with ?download=1
  POST /api/compare/json  JSON {"options","datasets":{"old","new"}}; returns both numbered tables`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return server.New(a.cfg, a.log).ListenAndServe(cmd.Context(), a.cfg.Listen)
		},
	}
	cmd.Flags().String("listen", config.Default().Listen, "listen address")
	a.bind(cmd.Flags().Lookup("listen"), config.KeyListen)
	return cmd
}
