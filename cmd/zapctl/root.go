package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/usestring/zap-mcp/internal/config"
	"github.com/usestring/zap-mcp/internal/logging"
	"github.com/usestring/zap-mcp/pkg/calltable"
	"github.com/usestring/zap-mcp/pkg/zap"
	"github.com/usestring/zap-mcp/pkg/zapapi"
)

// globalFlags override the environment configuration when set.
type globalFlags struct {
	host      string
	port      int
	apiKey    string
	version   string
	tableFile string
	timeout   time.Duration
	output    string
	verbose   bool
}

// app is what every subcommand works with.
type app struct {
	cfg     *config.Config
	invoker *calltable.Invoker
	zap     *zap.ZAP
	out     io.Writer
	output  string
}

func newRootCmd(out io.Writer, clientOpts ...zapapi.Option) *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "zapctl",
		Short: "Call the ZAP API through the call table",
		Long: `zapctl invokes any call of the ZAP API by name, e.g.

  zapctl call core/view/version
  zapctl call ascan/action/scan url=https://app.example.com recurse=true
  zapctl call alert/view/alerts baseurl=https://app.example.com --jq '.[].alert'

Connection settings come from ZAP_HOST, ZAP_PORT and ZAP_API_KEY unless
given as flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.host, "host", "", "proxy host (default $ZAP_HOST or localhost)")
	pf.IntVar(&flags.port, "port", 0, "proxy port (default $ZAP_PORT or 8080)")
	pf.StringVar(&flags.apiKey, "api-key", "", "API key for actions (default $ZAP_API_KEY)")
	pf.StringVar(&flags.version, "zap-version", "", "proxy version for call gating (default $ZAP_VERSION)")
	pf.StringVar(&flags.tableFile, "calltable", "", "extra call table file (default $ZAP_CALLTABLE_FILE)")
	pf.DurationVar(&flags.timeout, "timeout", 0, "HTTP timeout (default $HTTP_CLIENT_TIMEOUT or 30s)")
	pf.StringVarP(&flags.output, "output", "o", "pretty", "output format: pretty|json")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log each API call to stderr")

	setup := func(cmd *cobra.Command) (*app, error) {
		return newApp(cmd, &flags, out, clientOpts)
	}

	root.AddCommand(
		newCallsCmd(setup),
		newCallCmd(setup),
		newOverviewCmd(setup),
		newParseListCmd(setup),
	)
	return root
}

func newApp(cmd *cobra.Command, flags *globalFlags, out io.Writer, clientOpts []zapapi.Option) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	pf := cmd.Flags()
	if pf.Changed("host") {
		cfg.ZAPHost = flags.host
	}
	if pf.Changed("port") {
		cfg.ZAPPort = flags.port
	}
	if pf.Changed("api-key") {
		cfg.ZAPAPIKey = flags.apiKey
	}
	if pf.Changed("zap-version") {
		cfg.ZAPVersion = flags.version
	}
	if pf.Changed("calltable") {
		cfg.CallTableFile = flags.tableFile
	}
	if pf.Changed("timeout") {
		cfg.HTTPClientTimeout = flags.timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if flags.output != "pretty" && flags.output != "json" {
		return nil, fmt.Errorf("--output must be pretty or json, got %q", flags.output)
	}

	logCfg := cfg.Logging()
	if flags.verbose {
		logCfg.Level = "debug"
	} else if os.Getenv("LOG_LEVEL") == "" {
		logCfg.Level = "warn"
	}
	if _, err := logging.Setup(logCfg); err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	table, err := cfg.CallTable()
	if err != nil {
		return nil, err
	}
	client := cfg.Client(clientOpts...)
	return &app{
		cfg:     cfg,
		invoker: cfg.Invoker(client, table),
		zap:     zap.New(client, zap.WithTable(table)),
		out:     out,
		output:  flags.output,
	}, nil
}

// print writes v as JSON.
func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetEscapeHTML(false)
	if a.output == "pretty" {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// printText writes plain text results as is.
func (a *app) printText(s string) error {
	if a.output == "json" {
		return a.print(s)
	}
	_, err := fmt.Fprintln(a.out, s)
	return err
}
