package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/config"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

// app carries state shared by every subcommand once flags are parsed.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     *logrus.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}
	d := config.Default()

	rootCmd := &cobra.Command{
		Use:   "nricdiff",
		Short: "Compare two vendor lists by Full Name As Per NRIC",
		Long: `nricdiff compares a baseline roster (Excel A) with an updated roster (Excel B)
on the "Full Name As Per NRIC" column.

Names are compared after trimming, collapsing internal whitespace and upper-casing.
The result workbook has two sheets:
  - New_in_Excel_B        rows of B whose name is not in A
  - Removed_from_Excel_A  rows of A whose name is not in B`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./nricdiff.yaml if present)")
	pf.String("log-level", d.LogLevel, "log level: trace, debug, info, warn, error")
	pf.String("log-format", d.LogFormat, "log format: text or json")
	pf.String("name-column", d.NameColumn, "column holding the name to compare")
	pf.String("charset", d.Charset, "text encoding of .csv/.xls inputs (default UTF-8)")
	a.bind(pf.Lookup("log-level"), config.KeyLogLevel)
	a.bind(pf.Lookup("log-format"), config.KeyLogFormat)
	a.bind(pf.Lookup("name-column"), config.KeyNameColumn)
	a.bind(pf.Lookup("charset"), config.KeyCharset)

	rootCmd.AddCommand(a.compareCmd())
	rootCmd.AddCommand(a.sheetsCmd())
	rootCmd.AddCommand(a.toJSONCmd())
	rootCmd.AddCommand(a.serveCmd())

	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}
