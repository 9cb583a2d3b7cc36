package app

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newCapturesCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "captures",
		Short: "List archived captures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := e.openStore()
			if err != nil {
				return err
			}
			defer closeStore(store, e.logger)

			captures, err := store.Captures(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing captures: %w", err)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"id", "command", "created", "grid"})
			for _, c := range captures {
				grid := "-"
				if c.Params != nil {
					grid = fmt.Sprintf("%dx%d", c.Params.AngleSamples, c.Params.TimeSamples)
				}
				t.AppendRow(table.Row{c.ID, c.Command, humanize.Time(c.CreatedAt), grid})
			}
			t.AppendFooter(table.Row{"", "", "total", humanize.Comma(int64(len(captures)))})
			t.Render()
			return nil
		},
	}
}
