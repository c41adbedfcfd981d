package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/usestring/zap-mcp/pkg/zapapi"
)

func newParseListCmd(setup setupFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "parse-list [text]",
		Short: "Decode a bracketed list such as [a, b, c] (reads stdin without an argument)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = strings.TrimSpace(string(data))
			}
			return a.print(zapapi.ParseListString(text))
		},
	}
}
