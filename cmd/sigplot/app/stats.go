package app

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roman-kulish/signal-plots/internal/signal"
)

func newStatsCommand(e *env) *cobra.Command {
	var src surfaceSource

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print summary statistics of a signal surface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			surface, err := src.load(cmd.Context(), e)
			if err != nil {
				return err
			}

			writeStats(cmd, surface)
			return nil
		},
	}

	src.register(cmd)
	return cmd
}

func writeStats(cmd *cobra.Command, s *signal.Surface) {
	st := signal.Summarize(s)

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"metric", "value"})
	t.AppendRows([]table.Row{
		{"cells", humanize.Comma(int64(st.Cells))},
		{"time", fmt.Sprintf("%g..%g s (%d steps)", s.Time.Min, s.Time.Max, s.Cols())},
		{"azimuth", fmt.Sprintf("%g..%g° (%d steps)", s.Angle.Min, s.Angle.Max, s.Rows())},
		{"min", fmt.Sprintf("%0.2f dB", st.Min)},
		{"max", fmt.Sprintf("%0.2f dB", st.Max)},
		{"mean", fmt.Sprintf("%0.2f dB", st.Mean)},
		{"stddev", fmt.Sprintf("%0.2f dB", st.StdDev)},
	})
	t.Render()
}
