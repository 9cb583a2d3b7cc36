package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roman-kulish/signal-plots/internal/render"
	"github.com/roman-kulish/signal-plots/internal/signal"
)

// surfaceSource selects between a fresh surface and an archived capture.
type surfaceSource struct {
	captureID int64
}

func (s *surfaceSource) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&s.captureID, "capture", 0, "Read the surface of an archived capture instead of generating one")
}

func (s *surfaceSource) load(ctx context.Context, e *env) (*signal.Surface, error) {
	if s.captureID <= 0 {
		g, err := e.generator()
		if err != nil {
			return nil, err
		}
		return g.Generate(), nil
	}

	store, err := e.openStore()
	if err != nil {
		return nil, err
	}
	defer closeStore(store, e.logger)

	surface, err := store.ReadSurface(ctx, s.captureID)
	if err != nil {
		return nil, fmt.Errorf("reading capture %d: %w", s.captureID, err)
	}
	return surface, nil
}

func newRenderCommand(e *env) *cobra.Command {
	var (
		src           surfaceSource
		output        string
		format        string
		theme         string
		minPower      float64
		maxPower      float64
		noAnnotations bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a signal surface as a heatmap image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc := &e.config.Render
			if cmd.Flags().Changed("format") {
				rc.Format = format
			}
			if cmd.Flags().Changed("theme") {
				rc.Theme = theme
			}
			if cmd.Flags().Changed("min-power") {
				rc.MinPower = &minPower
			}
			if cmd.Flags().Changed("max-power") {
				rc.MaxPower = &maxPower
			}
			if noAnnotations {
				rc.NoAnnotations = true
			}
			if err := e.config.Validate(); err != nil {
				return err
			}

			surface, err := src.load(cmd.Context(), e)
			if err != nil {
				return err
			}
			return renderImage(surface, output, e)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Path to the output file, the extension is added from the format")
	cmd.Flags().StringVarP(&format, "format", "f", string(render.ImagePNG), "Output image format. [png, jpeg]")
	cmd.Flags().StringVar(&theme, "theme", string(render.DefaultTheme), "Color theme. [default, classic, grayscale, jungle, thermal, marine]")
	cmd.Flags().Float64Var(&minPower, "min-power", 0, "Define a manual minimum power (format nn.n)")
	cmd.Flags().Float64Var(&maxPower, "max-power", 0, "Define a manual maximum power (format nn.n)")
	cmd.Flags().BoolVar(&noAnnotations, "no-annotations", false, "Disable annotations such as time and azimuth scales")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func renderImage(surface *signal.Surface, output string, e *env) (err error) {
	format := e.config.ImageFormat()
	if !strings.HasSuffix(strings.ToLower(output), "."+string(format)) {
		output = fmt.Sprintf("%s.%s", output, format)
	}

	renderer, err := render.NewRenderer(e.config.RendererConfig())
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	bounds := renderer.Bounds(surface)
	size := renderer.Size(surface)

	e.logger.Info("rendering surface",
		slog.Group("image",
			slog.String("destination", output),
			slog.String("format", string(format)),
			slog.String("theme", e.config.Render.Theme),
			slog.Int("width", size.X),
			slog.Int("height", size.Y),
			slog.String("minPower", fmt.Sprintf("%0.2fdB", bounds.Min)),
			slog.String("maxPower", fmt.Sprintf("%0.2fdB", bounds.Max)),
		))

	img, err := renderer.Render(surface)
	if err != nil {
		return fmt.Errorf("rendering surface: %w", err)
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return render.Encode(out, img, format)
}
