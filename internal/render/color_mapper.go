package render

import (
	"fmt"
	"image/color"
	"math"
)

// ColorTheme represents a predefined color scheme for signal strength.
type ColorTheme string

const (
	DefaultTheme   ColorTheme = "default"   // Black to blue to cyan to yellow to red
	ClassicTheme   ColorTheme = "classic"   // Blue to red transition
	GrayscaleTheme ColorTheme = "grayscale" // Black to white transition
	JungleTheme    ColorTheme = "jungle"    // Dark green to yellow transition
	ThermalTheme   ColorTheme = "thermal"   // Black to red to yellow to white
	MarineTheme    ColorTheme = "marine"    // Deep blue to cyan to white

	DefaultColorMapSize = 256 // Default number of colors in the map
)

// Themes lists all accepted theme names.
var Themes = []ColorTheme{DefaultTheme, ClassicTheme, GrayscaleTheme, JungleTheme, ThermalTheme, MarineTheme}

// ParseColorTheme validates a theme name. An empty name selects DefaultTheme.
func ParseColorTheme(name string) (ColorTheme, error) {
	if name == "" {
		return DefaultTheme, nil
	}
	for _, t := range Themes {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown color theme '%s'", name)
}

// ColorMapper maps signal strength onto a pre-computed colour table.
type ColorMapper struct {
	colorMap      []color.Color // Pre-computed colors
	themeName     ColorTheme
	size          int     // Cache size
	powerPerIndex float64 // Power range per index step
	boundsMin     float64 // Cached bounds.Min
}

// NewColorMapper creates a new color mapper with specified theme and bounds.
// Uses default size (256) for the color map.
func NewColorMapper(theme ColorTheme, bounds PowerBounds) *ColorMapper {
	return NewColorMapperWithSize(theme, bounds, DefaultColorMapSize)
}

// NewColorMapperWithSize creates a new color mapper with specified size.
func NewColorMapperWithSize(theme ColorTheme, bounds PowerBounds, size int) *ColorMapper {
	if size < 2 {
		size = DefaultColorMapSize
	}

	cm := &ColorMapper{
		colorMap:  make([]color.Color, size),
		themeName: theme,
		size:      size,
	}

	fn := themeFunc(theme)
	for i := 0; i < cm.size; i++ {
		cm.colorMap[i] = fn(float64(i) / float64(cm.size-1))
	}
	cm.UpdateBounds(bounds)
	return cm
}

// UpdateBounds changes the power range covered by the colour table.
func (cm *ColorMapper) UpdateBounds(bounds PowerBounds) {
	span := bounds.Span()
	if span <= 0 {
		span = 1
	}
	cm.boundsMin = bounds.Min
	cm.powerPerIndex = span / float64(cm.size-1)
}

// Color returns a color for the given power value
func (cm *ColorMapper) Color(power float64) color.Color {
	if math.IsNaN(power) {
		return cm.colorMap[0]
	}

	index := int((power - cm.boundsMin) / cm.powerPerIndex)
	if index < 0 {
		return cm.colorMap[0]
	}
	if index >= cm.size {
		return cm.colorMap[cm.size-1]
	}
	return cm.colorMap[index]
}

// ThemeName returns the current color theme name
func (cm *ColorMapper) ThemeName() ColorTheme {
	return cm.themeName
}

// Size returns the color map size
func (cm *ColorMapper) Size() int {
	return cm.size
}

// HSV represents a color in HSV (Hue, Saturation, Value) color space
type HSV struct {
	H float64 // Hue angle in degrees [0-360]
	S float64 // Saturation [0-1]
	V float64 // Value/Brightness [0-1]
}

// RGB converts HSV to RGB color space
func (hsv HSV) RGB() color.RGBA {
	v := math.Max(0, math.Min(1, hsv.V))
	s := math.Max(0, math.Min(1, hsv.S))

	if s == 0 {
		g := uint8(v * 255)
		return color.RGBA{R: g, G: g, B: g, A: 255}
	}

	h := math.Mod(hsv.H, 360)
	if h < 0 {
		h += 360
	}
	h /= 60

	i := int(h)
	f := h - float64(i)

	p := uint8((v * (1 - s)) * 255)
	q := uint8((v * (1 - (s * f))) * 255)
	t := uint8((v * (1 - (s * (1 - f)))) * 255)
	vb := uint8(v * 255)

	switch i {
	case 0:
		return color.RGBA{R: vb, G: t, B: p, A: 255}
	case 1:
		return color.RGBA{R: q, G: vb, B: p, A: 255}
	case 2:
		return color.RGBA{R: p, G: vb, B: t, A: 255}
	case 3:
		return color.RGBA{R: p, G: q, B: vb, A: 255}
	case 4:
		return color.RGBA{R: t, G: p, B: vb, A: 255}
	default:
		return color.RGBA{R: vb, G: p, B: q, A: 255}
	}
}

func themeFunc(theme ColorTheme) func(float64) color.Color {
	switch theme {
	case ClassicTheme:
		return func(power float64) color.Color {
			return HSV{
				H: 240 - (power * 240),
				S: 0.9 + (power * 0.1),
				V: math.Pow(power, 0.7),
			}.RGB()
		}

	case GrayscaleTheme:
		return func(power float64) color.Color {
			v := uint8(math.Pow(power, 0.7) * 255)
			return color.RGBA{R: v, G: v, B: v, A: 255}
		}

	case JungleTheme:
		return func(power float64) color.Color {
			return HSV{
				H: 120 - (power * 60),
				S: 1.0,
				V: 0.3 + (math.Pow(power, 0.6) * 0.7),
			}.RGB()
		}

	case ThermalTheme:
		return func(power float64) color.Color {
			if power < 1.0/3 {
				return color.RGBA{R: uint8(power * 3 * 255), A: 255}
			}
			if power < 2.0/3 {
				return color.RGBA{R: 255, G: uint8((power - 1.0/3) * 3 * 255), A: 255}
			}
			return color.RGBA{R: 255, G: 255, B: uint8(math.Min(1, (power-2.0/3)*3) * 255), A: 255}
		}

	case MarineTheme:
		return func(power float64) color.Color {
			return HSV{
				H: 240 - (power * 60),
				S: 1.0 - (power * 0.8),
				V: 0.3 + (math.Pow(power, 0.6) * 0.7),
			}.RGB()
		}

	default: // Enhanced default theme
		return func(power float64) color.Color {
			power = math.Max(0, math.Min(1, power))
			enhanced := math.Pow(power, 0.7)

			switch {
			case power < 0.25:
				return HSV{H: 240, S: 1.0, V: enhanced * 4}.RGB()
			case power < 0.5:
				return HSV{H: 240 - ((power - 0.25) * 240), S: 1.0, V: enhanced * 1.5}.RGB()
			case power < 0.75:
				p := (power - 0.5) * 4
				return HSV{H: 180 - (p * 120), S: 1.0, V: math.Min(1.0, enhanced*1.5)}.RGB()
			default:
				p := (power - 0.75) * 4
				return HSV{H: 60 - (p * 60), S: 1.0, V: 1.0}.RGB()
			}
		}
	}
}
