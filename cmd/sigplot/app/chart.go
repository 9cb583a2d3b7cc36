package app

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roman-kulish/signal-plots/internal/chartpage"
	"github.com/roman-kulish/signal-plots/internal/signal"
)

func newChartCommand(e *env) *cobra.Command {
	var (
		src    surfaceSource
		output string
	)

	cmd := &cobra.Command{
		Use:       "chart <scatter|surface|heatmap>",
		Short:     "Write an ECharts HTML preview",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(chartpage.KindScatter), string(chartpage.KindSurface), string(chartpage.KindHeatmap)},
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			kind, err := chartpage.ParseKind(args[0])
			if err != nil {
				return err
			}

			var surface *signal.Surface
			if kind.NeedsSurface() {
				if surface, err = src.load(cmd.Context(), e); err != nil {
					return err
				}
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, ferr := os.Create(output)
				if ferr != nil {
					return ferr
				}
				defer func() {
					if cerr := f.Close(); cerr != nil && err == nil {
						err = cerr
					}
				}()
				w = f
			}

			if err = chartpage.NewBuilder(e.config.ChartOptions()...).Render(w, kind, surface); err != nil {
				return fmt.Errorf("writing chart: %w", err)
			}
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Path to the output HTML file (default stdout)")
	return cmd
}
