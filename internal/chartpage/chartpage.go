// Package chartpage renders standalone ECharts HTML previews of the scatter,
// surface and heatmap charts.
package chartpage

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/roman-kulish/signal-plots/internal/commands"
	"github.com/roman-kulish/signal-plots/internal/signal"
)

const (
	KindScatter Kind = "scatter"
	KindSurface Kind = "surface"
	KindHeatmap Kind = "heatmap"

	scatterTitle  = "Scatter Plot"
	surfaceTitle  = "3D Surface Plot"
	heatmapTitle  = "Heatmap Plot"
	timeTitle     = "Time (s)"
	angleTitle    = "Azimuth Angle (°)"
	strengthTitle = "Signal Strength (dB)"

	defaultWidth  = "900px"
	defaultHeight = "700px"
	defaultTheme  = "dark"
)

// viridis
var palette = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// Kind names one of the preview pages.
type Kind string

// Kinds lists all preview pages.
var Kinds = []Kind{KindScatter, KindSurface, KindHeatmap}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(s))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown chart kind '%s'", s)
}

// NeedsSurface reports whether the page plots generated signal data.
func (k Kind) NeedsSurface() bool {
	return k == KindSurface || k == KindHeatmap
}

func WithTheme(theme string) func(*Builder) {
	return func(b *Builder) {
		b.theme = theme
	}
}

func WithSize(width, height string) func(*Builder) {
	return func(b *Builder) {
		b.width = width
		b.height = height
	}
}

// WithAssetsHost overrides the location echarts.min.js is loaded from.
func WithAssetsHost(host string) func(*Builder) {
	return func(b *Builder) {
		b.assetsHost = host
	}
}

// Builder holds the page-wide presentation settings.
type Builder struct {
	theme      string
	width      string
	height     string
	assetsHost string
}

func NewBuilder(options ...func(*Builder)) *Builder {
	b := Builder{
		theme:  defaultTheme,
		width:  defaultWidth,
		height: defaultHeight,
	}
	for _, option := range options {
		option(&b)
	}
	return &b
}

// Render writes the HTML page of the given kind. s is ignored for the
// scatter page and required otherwise.
func (b *Builder) Render(w io.Writer, kind Kind, s *signal.Surface) error {
	if kind.NeedsSurface() && s == nil {
		return fmt.Errorf("chart %s requires a surface", kind)
	}

	var err error
	switch kind {
	case KindScatter:
		err = b.Scatter().Render(w)
	case KindSurface:
		err = b.Surface(s).Render(w)
	case KindHeatmap:
		err = b.Heatmap(s).Render(w)
	default:
		return fmt.Errorf("unknown chart kind '%s'", kind)
	}
	if err != nil {
		return fmt.Errorf("rendering %s chart: %w", kind, err)
	}
	return nil
}

func (b *Builder) init(title string) opts.Initialization {
	return opts.Initialization{
		PageTitle:  title,
		Theme:      b.theme,
		Width:      b.width,
		Height:     b.height,
		AssetsHost: b.assetsHost,
	}
}

// Scatter builds the fixed sample scatter.
func (b *Builder) Scatter() *charts.Scatter {
	x, y := commands.ScatterSample()

	data := make([]opts.ScatterData, 0, len(y))
	for _, v := range y {
		data = append(data, opts.ScatterData{Value: v})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(b.init(scatterTitle)),
		charts.WithTitleOpts(opts.Title{Title: scatterTitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	scatter.SetXAxis(x).AddSeries("sample", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))
	return scatter
}

// Surface builds a 3D surface chart of s.
func (b *Builder) Surface(s *signal.Surface) *charts.Surface3D {
	data := make([]opts.Chart3DData, 0, s.Rows()*s.Cols())
	for i, row := range s.Grid {
		for j, v := range row {
			data = append(data, opts.Chart3DData{Value: []interface{}{s.Time.Values[j], s.Angle.Values[i], v}})
		}
	}

	st := signal.Summarize(s)

	surface := charts.NewSurface3D()
	surface.SetGlobalOptions(
		charts.WithInitializationOpts(b.init(surfaceTitle)),
		charts.WithTitleOpts(opts.Title{Title: surfaceTitle, Subtitle: subtitle(s)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: timeTitle}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: angleTitle}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: strengthTitle}),
		charts.WithVisualMapOpts(visualMap(st)),
	)
	surface.AddSeries(surfaceTitle, data)
	return surface
}

// Heatmap builds a heatmap of s over time and azimuth categories.
func (b *Builder) Heatmap(s *signal.Surface) *charts.HeatMap {
	data := make([]opts.HeatMapData, 0, s.Rows()*s.Cols())
	for i, row := range s.Grid {
		for j, v := range row {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, v}})
		}
	}

	st := signal.Summarize(s)

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(b.init(heatmapTitle)),
		charts.WithTitleOpts(opts.Title{Title: heatmapTitle, Subtitle: subtitle(s)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: timeTitle, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: angleTitle, Data: labels(s.Angle.Values, 0)}),
		charts.WithVisualMapOpts(visualMap(st)),
	)
	hm.SetXAxis(labels(s.Time.Values, 1)).AddSeries(strengthTitle, data)
	return hm
}

func visualMap(st signal.Stats) opts.VisualMap {
	return opts.VisualMap{
		Show:       opts.Bool(true),
		Calculable: opts.Bool(true),
		Min:        float32(st.Min),
		Max:        float32(st.Max),
		InRange:    &opts.VisualMapInRange{Color: palette},
	}
}

func subtitle(s *signal.Surface) string {
	return fmt.Sprintf("time=%g..%g s angle=%g..%g°", s.Time.Min, s.Time.Max, s.Angle.Min, s.Angle.Max)
}

func labels(values []float64, prec int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatFloat(v, 'f', prec, 64)
	}
	return out
}
