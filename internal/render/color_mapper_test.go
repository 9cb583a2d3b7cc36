package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorTheme(t *testing.T) {
	theme, err := ParseColorTheme("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, theme)

	for _, want := range Themes {
		got, err := ParseColorTheme(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = ParseColorTheme("sepia")
	assert.ErrorContains(t, err, "sepia")
}

func TestHSV_RGB(t *testing.T) {
	tests := []struct {
		name string
		hsv  HSV
		want color.RGBA
	}{
		{"red", HSV{H: 0, S: 1, V: 1}, color.RGBA{R: 255, A: 255}},
		{"green", HSV{H: 120, S: 1, V: 1}, color.RGBA{G: 255, A: 255}},
		{"blue", HSV{H: 240, S: 1, V: 1}, color.RGBA{B: 255, A: 255}},
		{"wrapped red", HSV{H: 360, S: 1, V: 1}, color.RGBA{R: 255, A: 255}},
		{"gray", HSV{H: 90, S: 0, V: 0.5}, color.RGBA{R: 127, G: 127, B: 127, A: 255}},
		{"black", HSV{H: 0, S: 1, V: 0}, color.RGBA{A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.hsv.RGB())
		})
	}
}

func TestColorMapper_Clamps(t *testing.T) {
	cm := NewColorMapper(GrayscaleTheme, PowerBounds{Min: 60, Max: 80})

	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	assert.Equal(t, black, cm.Color(10))
	assert.Equal(t, black, cm.Color(60))
	assert.Equal(t, white, cm.Color(80.5))
	assert.Equal(t, white, cm.Color(500))
	assert.Equal(t, GrayscaleTheme, cm.ThemeName())
	assert.Equal(t, DefaultColorMapSize, cm.Size())
}

func TestColorMapper_ZeroSpan(t *testing.T) {
	cm := NewColorMapperWithSize(DefaultTheme, PowerBounds{Min: 70, Max: 70}, 16)

	assert.Equal(t, 16, cm.Size())
	assert.NotPanics(t, func() { cm.Color(70) })
}

func TestColorMapper_AllThemesOpaque(t *testing.T) {
	for _, theme := range Themes {
		cm := NewColorMapper(theme, PowerBounds{Min: 0, Max: 1})
		for i := 0; i <= 10; i++ {
			_, _, _, a := cm.Color(float64(i) / 10).RGBA()
			assert.Equal(t, uint32(0xffff), a, "theme %s at %d", theme, i)
		}
	}
}
