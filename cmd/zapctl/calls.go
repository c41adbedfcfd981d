package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/usestring/zap-mcp/internal/catalog"
	"github.com/usestring/zap-mcp/internal/mcp/tools"
	"github.com/usestring/zap-mcp/pkg/calltable"
	"github.com/usestring/zap-mcp/pkg/zapapi"
)

type setupFunc func(cmd *cobra.Command) (*app, error)

// callRow is one line of calls list/search output.
type callRow struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Params      string `json:"params,omitempty"`
	Legacy      bool   `json:"legacy,omitempty"`
}

func newCallsCmd(setup setupFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calls",
		Short: "Browse the call table",
	}

	var (
		component string
		kind      string
		legacy    bool
		limit     int
	)
	search := func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		q := catalog.Query{
			Text:          strings.Join(args, " "),
			Component:     component,
			IncludeLegacy: legacy,
			Limit:         limit,
		}
		if kind != "" {
			k, ok := zapapi.ParseCallKind(kind)
			if !ok {
				return fmt.Errorf("--kind must be view, action or other, got %q", kind)
			}
			q.Kind = k
		}
		res := catalog.Build(a.invoker.Table()).Search(q)
		rows := make([]callRow, 0, len(res.Hits))
		for _, h := range res.Hits {
			rows = append(rows, rowFor(h.Call))
		}
		return a.print(rows)
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List calls, optionally filtered by component and kind",
		Args:  cobra.NoArgs,
		RunE:  search,
	}
	find := &cobra.Command{
		Use:   "search <keywords>...",
		Short: "Search calls by keywords in names, parameters and descriptions",
		Args:  cobra.MinimumNArgs(1),
		RunE:  search,
	}
	for _, c := range []*cobra.Command{list, find} {
		c.Flags().StringVarP(&component, "component", "c", "", "only calls of this component")
		c.Flags().StringVarP(&kind, "kind", "k", "", "only calls of this kind (view|action|other)")
		c.Flags().BoolVar(&legacy, "legacy", false, "include legacy calls")
		c.Flags().IntVarP(&limit, "limit", "n", 0, "max calls shown (0 = all)")
	}

	describe := &cobra.Command{
		Use:   "describe <component/kind/method>",
		Short: "Show a call's parameters, result shape and locator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			call, ok := a.invoker.Table().Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", calltable.ErrUnknownCall, args[0])
			}
			return a.print(tools.Describe(call, a.invoker.ProxyVersion()))
		},
	}

	cmd.AddCommand(list, find, describe)
	return cmd
}

func rowFor(c calltable.Call) callRow {
	names := make([]string, 0, len(c.Params))
	for _, p := range c.Params {
		if p.Required {
			names = append(names, p.Name+"*")
		} else {
			names = append(names, p.Name)
		}
	}
	return callRow{
		Name:        c.Name(),
		Description: c.Description,
		Params:      strings.Join(names, " "),
		Legacy:      c.IsLegacy(),
	}
}
