package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/roman-kulish/signal-plots/internal/signal"
)

const (
	dpi            = 96.0
	fontSize       = 9.0
	tickMarkLength = 5
	labelPadding   = 4

	defaultCellWidth  = 6
	defaultCellHeight = 6

	// Default border sizes in pixels
	defaultTopBorder    = 30
	defaultLeftBorder   = 56
	defaultBottomBorder = 30
	defaultRightBorder  = 24

	pixelsPerTimeLabel  = 90
	pixelsPerAngleLabel = 36
)

// BorderConfig defines the sizes of white space around the grid
type BorderConfig struct {
	Top    int // Space for time scale
	Left   int // Space for angle scale
	Bottom int // Space for information bar
	Right  int // Right padding
}

// Config holds all configuration options for surface rendering
type Config struct {
	ColorTheme   ColorTheme // Color scheme for signal strength
	ColorMapSize int        // Number of colors in gradient (0 for default)

	CellWidth  int // Pixels per time step
	CellHeight int // Pixels per azimuth step

	MinPower *float64 // Manual lower bound in dB, percentile based if nil
	MaxPower *float64 // Manual upper bound in dB, percentile based if nil

	FontSize      float64
	NoAnnotations bool
	BorderConfig  BorderConfig
}

// Renderer draws a signal surface as a raster heatmap. Time runs left to
// right, azimuth bottom to top.
type Renderer struct {
	config Config
	font   *truetype.Font
}

// NewRenderer creates a new renderer with the given configuration
func NewRenderer(config Config) (*Renderer, error) {
	if config.ColorTheme == "" {
		config.ColorTheme = DefaultTheme
	}
	if config.CellWidth <= 0 {
		config.CellWidth = defaultCellWidth
	}
	if config.CellHeight <= 0 {
		config.CellHeight = defaultCellHeight
	}
	if config.FontSize == 0 {
		config.FontSize = fontSize
	}
	if config.NoAnnotations {
		config.BorderConfig = BorderConfig{}
	} else {
		if config.BorderConfig.Top == 0 {
			config.BorderConfig.Top = defaultTopBorder
		}
		if config.BorderConfig.Left == 0 {
			config.BorderConfig.Left = defaultLeftBorder
		}
		if config.BorderConfig.Bottom == 0 {
			config.BorderConfig.Bottom = defaultBottomBorder
		}
		if config.BorderConfig.Right == 0 {
			config.BorderConfig.Right = defaultRightBorder
		}
	}
	if config.MinPower != nil && config.MaxPower != nil && *config.MinPower >= *config.MaxPower {
		return nil, fmt.Errorf("min power %.2f must be below max power %.2f", *config.MinPower, *config.MaxPower)
	}

	parsedFont, err := freetype.ParseFont(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	return &Renderer{config: config, font: parsedFont}, nil
}

// Bounds returns the power range used for the colour scale of s.
func (r *Renderer) Bounds(s *signal.Surface) PowerBounds {
	hist := NewPowerHistogram(defaultBinWidth, defaultMinSpan)
	for _, row := range s.Grid {
		for _, v := range row {
			hist.Update(v)
		}
	}

	bounds, ok := hist.PercentileBounds()
	if !ok {
		st := signal.Summarize(s)
		bounds = PowerBounds{Min: st.Min, Max: st.Max, Mean: st.Mean}
	}
	if r.config.MinPower != nil {
		bounds.Min = *r.config.MinPower
	}
	if r.config.MaxPower != nil {
		bounds.Max = *r.config.MaxPower
	}
	return bounds
}

// Size returns the dimensions of the image Render would produce for s.
func (r *Renderer) Size(s *signal.Surface) image.Point {
	b := r.config.BorderConfig
	return image.Point{
		X: b.Left + s.Cols()*r.config.CellWidth + b.Right,
		Y: b.Top + s.Rows()*r.config.CellHeight + b.Bottom,
	}
}

// Render creates an image of the surface with annotations
func (r *Renderer) Render(s *signal.Surface) (*image.RGBA, error) {
	if s == nil || s.Rows() == 0 || s.Cols() == 0 {
		return nil, fmt.Errorf("nothing to render: empty surface")
	}

	size := r.Size(s)
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	area := image.Rect(
		r.config.BorderConfig.Left,
		r.config.BorderConfig.Top,
		r.config.BorderConfig.Left+s.Cols()*r.config.CellWidth,
		r.config.BorderConfig.Top+s.Rows()*r.config.CellHeight,
	)

	bounds := r.Bounds(s)
	cm := NewColorMapperWithSize(r.config.ColorTheme, bounds, r.config.ColorMapSize)

	if !r.config.NoAnnotations {
		ann := newAnnotator(r.font, r.config.FontSize, area)
		defer ann.Close()

		if err := ann.annotate(img, s, bounds); err != nil {
			return nil, fmt.Errorf("drawing annotations: %w", err)
		}
	}

	r.renderGrid(img, area, s, cm)
	return img, nil
}

func (r *Renderer) renderGrid(img *image.RGBA, area image.Rectangle, s *signal.Surface, cm *ColorMapper) {
	rows := s.Rows()
	for i, row := range s.Grid {
		// highest azimuth at the top
		y0 := area.Min.Y + (rows-1-i)*r.config.CellHeight
		for j, v := range row {
			x0 := area.Min.X + j*r.config.CellWidth
			cell := image.Rect(x0, y0, x0+r.config.CellWidth, y0+r.config.CellHeight)
			draw.Draw(img, cell, image.NewUniform(cm.Color(v)), image.Point{}, draw.Src)
		}
	}
}

type annotator struct {
	context  *freetype.Context
	fontFace font.Face
	area     image.Rectangle
}

func newAnnotator(f *truetype.Font, size float64, area image.Rectangle) *annotator {
	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetHinting(font.HintingNone)
	ctx.SetSrc(image.Black)

	return &annotator{
		context: ctx,
		area:    area,
		fontFace: truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     dpi,
			Hinting: font.HintingNone,
		}),
	}
}

func (a *annotator) Close() error {
	if a.fontFace != nil {
		return a.fontFace.Close()
	}
	return nil
}

func (a *annotator) annotate(img *image.RGBA, s *signal.Surface, bounds PowerBounds) error {
	a.context.SetClip(img.Bounds())
	a.context.SetDst(img)

	ops := []struct {
		msg string
		fn  func(*image.RGBA, *signal.Surface, PowerBounds) error
	}{
		{"drawing time scale", a.drawTimeScale},
		{"drawing angle scale", a.drawAngleScale},
		{"drawing info bar", a.drawInfoBar},
	}
	for _, op := range ops {
		if err := op.fn(img, s, bounds); err != nil {
			return fmt.Errorf("%s: %w", op.msg, err)
		}
	}
	return nil
}

func (a *annotator) fontHeight() int {
	m := a.fontFace.Metrics()
	return (m.Ascent + m.Descent).Round()
}

func (a *annotator) drawTimeScale(img *image.RGBA, s *signal.Surface, _ PowerBounds) error {
	span := s.Time.Max - s.Time.Min
	step := niceStep(span, a.area.Dx(), pixelsPerTimeLabel, timeSteps)
	textY := a.area.Min.Y - tickMarkLength - labelPadding

	for _, t := range ticks(s.Time.Min, s.Time.Max, step) {
		x := a.area.Min.X + int((t-s.Time.Min)/span*float64(a.area.Dx()-1))

		for y := a.area.Min.Y - tickMarkLength; y < a.area.Min.Y; y++ {
			img.Set(x, y, color.Black)
		}

		label := formatSeconds(t)
		width := font.MeasureString(a.fontFace, label).Round()
		if _, err := a.context.DrawString(label, freetype.Pt(x-width/2, textY)); err != nil {
			return fmt.Errorf("drawing time label: %w", err)
		}
	}
	return nil
}

func (a *annotator) drawAngleScale(img *image.RGBA, s *signal.Surface, _ PowerBounds) error {
	span := s.Angle.Max - s.Angle.Min
	step := niceStep(span, a.area.Dy(), pixelsPerAngleLabel, angleSteps)
	half := a.fontHeight() / 2

	for _, deg := range ticks(s.Angle.Min, s.Angle.Max, step) {
		y := a.area.Max.Y - 1 - int((deg-s.Angle.Min)/span*float64(a.area.Dy()-1))

		for x := a.area.Min.X - tickMarkLength; x < a.area.Min.X; x++ {
			img.Set(x, y, color.Black)
		}

		label := fmt.Sprintf("%.0f°", deg)
		width := font.MeasureString(a.fontFace, label).Round()
		pt := freetype.Pt(a.area.Min.X-tickMarkLength-labelPadding-width, y+half-a.fontFace.Metrics().Descent.Round())
		if _, err := a.context.DrawString(label, pt); err != nil {
			return fmt.Errorf("drawing angle label: %w", err)
		}
	}
	return nil
}

func (a *annotator) drawInfoBar(img *image.RGBA, s *signal.Surface, bounds PowerBounds) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Time: %s - %s", formatSeconds(s.Time.Min), formatSeconds(s.Time.Max)))
	sb.WriteString("; ")
	sb.WriteString(fmt.Sprintf("Azimuth: %.0f° - %.0f°", s.Angle.Min, s.Angle.Max))
	sb.WriteString("; ")
	sb.WriteString(fmt.Sprintf("Scale: %s - %s dB", humanize.FtoaWithDigits(bounds.Min, 2), humanize.FtoaWithDigits(bounds.Max, 2)))
	sb.WriteString("; ")
	sb.WriteString(fmt.Sprintf("%s cells", humanize.Comma(int64(s.Rows()*s.Cols()))))

	metrics := a.fontFace.Metrics()
	bottom := img.Bounds().Max.Y - a.area.Max.Y
	textY := img.Bounds().Max.Y - (bottom-a.fontHeight())/2 - metrics.Descent.Round()

	if _, err := a.context.DrawString(sb.String(), freetype.Pt(a.area.Min.X, textY)); err != nil {
		return fmt.Errorf("drawing info text: %w", err)
	}
	return nil
}

var (
	// seconds
	timeSteps = []float64{1, 5, 10, 15, 30, 60, 120, 300, 600, 900, 1800, 3600, 7200, 14400}
	// degrees
	angleSteps = []float64{1, 5, 10, 15, 30, 45, 60, 90, 180, 360}
)

// niceStep picks the smallest candidate step that keeps labels at least
// pixelsPerLabel apart. It falls back to half the span.
func niceStep(span float64, length, pixelsPerLabel int, candidates []float64) float64 {
	if span <= 0 || length <= 0 {
		return 1
	}

	maxLabels := float64(length) / float64(pixelsPerLabel)
	if maxLabels < 1 {
		maxLabels = 1
	}
	target := span / maxLabels

	for _, step := range candidates {
		if step >= target {
			return step
		}
	}
	return span / 2
}

// ticks returns the multiples of step within [min, max].
func ticks(min, max, step float64) []float64 {
	if step <= 0 {
		return nil
	}

	var out []float64
	first := float64(int64(min/step)) * step
	if first < min {
		first += step
	}
	for v := first; v <= max+step*1e-9; v += step {
		out = append(out, v)
	}
	return out
}

func formatSeconds(sec float64) string {
	switch {
	case sec >= 3600 && int64(sec)%3600 == 0:
		return fmt.Sprintf("%dh", int64(sec)/3600)
	case sec >= 60 && int64(sec)%60 == 0:
		return fmt.Sprintf("%dm", int64(sec)/60)
	default:
		return fmt.Sprintf("%ss", humanize.FtoaWithDigits(sec, 1))
	}
}
