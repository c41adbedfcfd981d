package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/usestring/zap-mcp/internal/extract"
	"github.com/usestring/zap-mcp/internal/query"
	"github.com/usestring/zap-mcp/pkg/calltable"
	"github.com/usestring/zap-mcp/pkg/zapapi"
)

type callFlags struct {
	format     string
	jq         string
	xpath      string
	css        string
	attr       string
	nulls      []string
	out        string
	maxResults int
}

func newCallCmd(setup setupFunc) *cobra.Command {
	var f callFlags
	cmd := &cobra.Command{
		Use:   "call <component/kind/method> [name=value]...",
		Short: "Invoke a call by name",
		Long: `Invoke a call by name. Arguments are name=value pairs; name= sends an
empty value and --null name sends an explicit null.

Results are printed as JSON. Text results print as is; binary results
need --out.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			callArgs, err := parseArgs(args[1:], f.nulls)
			if err != nil {
				return err
			}
			return runCall(cmd, a, args[0], callArgs, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.format, "format", "f", "json", "rendering to fetch: json|xml|html")
	fl.StringVar(&f.jq, "jq", "", "jq expression applied to the JSON result")
	fl.StringVar(&f.xpath, "xpath", "", "XPath expression applied to the xml (or html) rendering")
	fl.StringVar(&f.css, "css", "", "CSS selector applied to the html rendering")
	fl.StringVar(&f.attr, "attr", "", "with --css: print this attribute instead of the text")
	fl.StringSliceVar(&f.nulls, "null", nil, "send this parameter as null (repeatable)")
	fl.StringVar(&f.out, "out", "", "write the result to this file instead of stdout")
	fl.IntVar(&f.maxResults, "max-results", 0, "max values printed by --jq, --xpath or --css (0 = all)")
	cmd.MarkFlagsMutuallyExclusive("jq", "xpath", "css")
	return cmd
}

// parseArgs turns name=value pairs into call arguments. Values stay strings;
// the invoker formats them the same way as typed values.
func parseArgs(pairs, nulls []string) (map[string]any, error) {
	args := make(map[string]any, len(pairs)+len(nulls))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("argument %q is not name=value", pair)
		}
		if _, dup := args[name]; dup {
			return nil, fmt.Errorf("argument %q given twice", name)
		}
		args[name] = value
	}
	for _, name := range nulls {
		if _, dup := args[name]; dup {
			return nil, fmt.Errorf("argument %q given twice", name)
		}
		args[name] = nil
	}
	return args, nil
}

func runCall(cmd *cobra.Command, a *app, name string, args map[string]any, f callFlags) error {
	ctx := cmd.Context()
	call, err := a.invoker.Resolve(name)
	if err != nil {
		return err
	}

	format, ok := zapapi.ParseFormat(f.format)
	if !ok || format == zapapi.FormatOther {
		return fmt.Errorf("--format must be json, xml or html, got %q", f.format)
	}
	mode, expr := extract.Mode(""), ""
	switch {
	case f.xpath != "":
		mode, expr = extract.ModeXPath, f.xpath
	case f.css != "":
		mode, expr = extract.ModeCSS, f.css
	}
	if f.attr != "" && mode != extract.ModeCSS {
		return errors.New("--attr requires --css")
	}
	if mode != "" && format == zapapi.FormatJSON {
		format = extract.FormatFor(mode)
	}
	if f.jq != "" && format != zapapi.FormatJSON {
		return errors.New("--jq applies to the json rendering only")
	}

	if format != zapapi.FormatJSON {
		if call.Result == calltable.ResultBinary {
			return fmt.Errorf("%s returns binary data; use the json rendering with --out", call.Name())
		}
		body, err := a.invoker.InvokeCallRaw(ctx, format, call, args)
		if err != nil {
			return err
		}
		if mode == "" {
			return a.emitText(f.out, body)
		}
		res, err := extract.Extract(body, format, mode, expr, extract.Options{MaxResults: f.maxResults, Attr: f.attr})
		if err != nil {
			return err
		}
		return a.emit(f.out, res.Values)
	}

	value, err := a.invoker.InvokeCall(ctx, call, args)
	if err != nil {
		return err
	}
	switch v := value.(type) {
	case []byte:
		if f.out == "" {
			return fmt.Errorf("%s returns %d bytes of binary data; use --out", call.Name(), len(v))
		}
		return os.WriteFile(f.out, v, 0o644)
	case string:
		if call.Result == calltable.ResultText && f.jq == "" {
			return a.emitText(f.out, v)
		}
	}
	if f.jq != "" {
		engine, err := query.NewEngine(a.cfg.JQCacheSize)
		if err != nil {
			return err
		}
		res, err := engine.Run(ctx, f.jq, value, query.Options{MaxResults: f.maxResults})
		if err != nil {
			return err
		}
		for _, e := range res.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "jq: %s\n", e)
		}
		value = res.Values
	}
	return a.emit(f.out, value)
}

// emit prints v as JSON, or writes it to path.
func (a *app) emit(path string, v any) error {
	if path == "" {
		return a.print(v)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func (a *app) emitText(path, s string) error {
	if path == "" {
		return a.printText(s)
	}
	return os.WriteFile(path, []byte(s), 0o644)
}
