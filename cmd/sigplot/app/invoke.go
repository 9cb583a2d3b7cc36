package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roman-kulish/signal-plots/internal/commands"
)

func newInvokeCommand(e *env) *cobra.Command {
	var indent bool

	cmd := &cobra.Command{
		Use:   "invoke <command>",
		Short: "Run one chart command and print its JSON payload",
		Long: `Run one chart command and print its Plotly figure as JSON.

Commands:
  generate_plot_json          fixed sample scatter
  generate_surface_plot_json  3D surface of a fresh signal grid
  generate_heatmap_plot_json  heatmap of a fresh signal grid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plots, store, err := e.plots()
			if err != nil {
				return err
			}
			defer closeStore(store, e.logger)

			v, err := commands.NewPlotRegistry(plots, e.logger).Invoke(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if indent {
				enc.SetIndent("", "  ")
			}
			if err = enc.Encode(v); err != nil {
				return fmt.Errorf("encoding payload: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&indent, "indent", false, "Indent the JSON output")
	return cmd
}
