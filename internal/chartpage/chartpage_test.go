package chartpage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roman-kulish/signal-plots/internal/signal"
)

func TestParseKind(t *testing.T) {
	for _, want := range Kinds {
		got, err := ParseKind(string(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := ParseKind("HeatMap")
	require.NoError(t, err)
	assert.Equal(t, KindHeatmap, got)

	_, err = ParseKind("pie")
	assert.Error(t, err)
}

func TestBuilder_Render(t *testing.T) {
	s, err := signal.Generate(signal.DefaultParams(), signal.ConstSource(0))
	require.NoError(t, err)

	tests := []struct {
		kind  Kind
		title string
	}{
		{KindScatter, scatterTitle},
		{KindSurface, surfaceTitle},
		{KindHeatmap, heatmapTitle},
	}

	b := NewBuilder()
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, b.Render(&buf, tt.kind, s))

			html := buf.String()
			assert.Contains(t, html, "<title>"+tt.title+"</title>")
			assert.Contains(t, html, "echarts")
		})
	}
}

func TestBuilder_RenderRequiresSurface(t *testing.T) {
	b := NewBuilder()

	var buf bytes.Buffer
	assert.NoError(t, b.Render(&buf, KindScatter, nil))
	assert.Error(t, b.Render(&buf, KindSurface, nil))
	assert.Error(t, b.Render(&buf, Kind("pie"), nil))
}

func TestBuilder_Heatmap(t *testing.T) {
	s, err := signal.Generate(signal.DefaultParams(), signal.ConstSource(0))
	require.NoError(t, err)

	hm := NewBuilder(WithTheme("white"), WithSize("100%", "500px")).Heatmap(s)
	require.Len(t, hm.MultiSeries, 1)
	assert.Len(t, hm.MultiSeries[0].Data, 50*100)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, []string{"-180", "0", "180"}, labels([]float64{-180, 0, 180}, 0))
	assert.Equal(t, []string{"6.1"}, labels([]float64{6.06}, 1))
}
