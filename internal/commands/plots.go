package commands

import (
	"context"
	"log/slog"
	"slices"

	"github.com/roman-kulish/signal-plots/internal/plotly"
	"github.com/roman-kulish/signal-plots/internal/signal"
)

const (
	PlotCommand    = "generate_plot_json"
	SurfaceCommand = "generate_surface_plot_json"
	HeatmapCommand = "generate_heatmap_plot_json"

	surfaceTitle  = "3D Surface Plot"
	heatmapTitle  = "Heatmap Plot"
	timeTitle     = "Time (s)"
	angleTitle    = "Azimuth Angle (°)"
	strengthTitle = "Signal Strength (dB)"

	backgroundColor = "grey"
	fontColor       = "white"
	tickColor       = "white"
	gridColor       = "lightgrey"
)

var (
	scatterX = []float64{1, 2, 3, 4, 5}
	scatterY = []float64{10, 15, 7, 20, 5}
)

// Recorder archives generated surfaces. Implemented by the capture store.
type Recorder interface {
	RecordSurface(ctx context.Context, command string, s *signal.Surface) (int64, error)
}

// WithRecorder archives every surface produced by the surface and heatmap
// commands.
func WithRecorder(r Recorder) func(*Plots) {
	return func(p *Plots) {
		p.recorder = r
	}
}

// WithLogger sets the logger used to report recording failures.
func WithLogger(l *slog.Logger) func(*Plots) {
	return func(p *Plots) {
		p.logger = l
	}
}

// Plots implements the three chart commands on top of a signal generator.
type Plots struct {
	generator *signal.Generator
	recorder  Recorder
	logger    *slog.Logger
}

func NewPlots(g *signal.Generator, options ...func(*Plots)) *Plots {
	p := Plots{
		generator: g,
		logger:    slog.Default(),
	}
	for _, option := range options {
		option(&p)
	}
	if p.generator == nil {
		p.generator = signal.NewDefaultGenerator()
	}
	return &p
}

// GeneratePlotJSON returns a scatter of fixed sample data.
func (p *Plots) GeneratePlotJSON() map[string]any {
	return mustValue(ScatterFigure())
}

// GenerateSurfacePlotJSON returns a 3D surface of a freshly generated grid.
func (p *Plots) GenerateSurfacePlotJSON(ctx context.Context) map[string]any {
	s := p.generate(ctx, SurfaceCommand)
	return mustValue(SurfaceFigure(s))
}

// GenerateHeatmapPlotJSON returns a heatmap of a freshly generated grid.
func (p *Plots) GenerateHeatmapPlotJSON(ctx context.Context) map[string]any {
	s := p.generate(ctx, HeatmapCommand)
	return mustValue(HeatmapFigure(s))
}

func (p *Plots) generate(ctx context.Context, command string) *signal.Surface {
	s := p.generator.Generate()
	if p.recorder == nil {
		return s
	}

	id, err := p.recorder.RecordSurface(ctx, command, s)
	if err != nil {
		p.logger.Warn("failed to record surface", slog.String("command", command), slog.String("error", err.Error()))
		return s
	}
	p.logger.Debug("surface recorded", slog.String("command", command), slog.Int64("captureID", id))
	return s
}

// ScatterSample returns a copy of the fixed points behind the scatter command.
func ScatterSample() (x, y []float64) {
	return slices.Clone(scatterX), slices.Clone(scatterY)
}

func ScatterFigure() *plotly.Figure {
	return plotly.NewFigure().AddTrace(plotly.NewScatter(scatterX, scatterY))
}

func SurfaceFigure(s *signal.Surface) *plotly.Figure {
	trace := plotly.NewSurface(s.Grid).
		WithX(s.Time.Values).
		WithY(s.Angle.Values).
		WithName(surfaceTitle)

	scene := &plotly.Scene{
		XAxis: plotly.NewAxis().WithTitle(timeTitle),
		YAxis: plotly.NewAxis().WithTitle(angleTitle),
		ZAxis: plotly.NewAxis().WithTitle(strengthTitle),
	}

	layout := plotly.NewLayout().
		WithTitle(surfaceTitle).
		WithBackground(backgroundColor, backgroundColor).
		WithFont(&plotly.Font{Color: fontColor}).
		WithScene(scene).
		WithAxes(styledAxis(timeTitle), styledAxis(angleTitle), styledAxis(strengthTitle))

	return plotly.NewFigure().AddTrace(trace).SetLayout(layout)
}

func HeatmapFigure(s *signal.Surface) *plotly.Figure {
	trace := plotly.NewHeatMap(s.Time.Values, s.Angle.Values, s.Grid)

	layout := plotly.NewLayout().
		WithTitle(heatmapTitle).
		WithAxes(
			plotly.NewAxis().WithTitle(timeTitle),
			plotly.NewAxis().WithTitle(angleTitle),
			plotly.NewAxis().WithTitle(strengthTitle),
		)

	return plotly.NewFigure().AddTrace(trace).SetLayout(layout)
}

func styledAxis(title string) *plotly.Axis {
	return plotly.NewAxis().WithTitle(title).WithTickColor(tickColor).WithGridColor(gridColor)
}

// mustValue panics on serialization failure: a figure that cannot be
// encoded is a programming error.
func mustValue(f *plotly.Figure) map[string]any {
	v, err := f.Value()
	if err != nil {
		panic(err)
	}
	return v
}
