package app

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roman-kulish/signal-plots/internal/chartpage"
	"github.com/roman-kulish/signal-plots/internal/commands"
	"github.com/roman-kulish/signal-plots/internal/render"
	"github.com/roman-kulish/signal-plots/internal/server"
)

func newServeCommand(e *env) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve chart commands over HTTP",
		Long: `Serve the chart commands, ECharts previews and raster heatmaps over HTTP.

Routes:
  GET      /api/commands
  GET|POST /api/invoke/{command}
  GET      /charts/{scatter|surface|heatmap}
  GET      /images/heatmap.{png|jpeg}
  GET      /health`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if address != "" {
				e.config.Server.Address = address
			}
			return runServe(cmd, e)
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "Listen address, overrides server.address")
	return cmd
}

func runServe(cmd *cobra.Command, e *env) error {
	plots, store, err := e.plots()
	if err != nil {
		return err
	}
	defer closeStore(store, e.logger)

	g, err := e.generator()
	if err != nil {
		return err
	}

	renderer, err := render.NewRenderer(e.config.RendererConfig())
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	srv, err := server.New(
		e.config.Server.Address,
		commands.NewPlotRegistry(plots, e.logger),
		g,
		server.WithLogger(e.logger),
		server.WithShutdownTimeout(e.config.Server.ShutdownTimeout.Duration()),
		server.WithCharts(chartpage.NewBuilder(e.config.ChartOptions()...)),
		server.WithRenderer(renderer),
	)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	e.logger.Info("serving chart commands",
		slog.Group("settings",
			slog.String("address", e.config.Server.Address),
			slog.Bool("storage", store != nil),
			slog.String("theme", e.config.Render.Theme),
		))

	return srv.Run(cmd.Context())
}
