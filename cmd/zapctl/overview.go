package main

import (
	"github.com/spf13/cobra"

	"github.com/usestring/zap-mcp/internal/overview"
)

func newOverviewCmd(setup setupFunc) *cobra.Command {
	var concurrency int
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Summarize the proxy: version, hosts, alerts and running scans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			snap, err := overview.Collect(cmd.Context(), a.zap, overview.WithConcurrency(concurrency))
			if err != nil {
				return err
			}
			return a.print(snap)
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", overview.DefaultConcurrency, "requests in flight")
	return cmd
}
