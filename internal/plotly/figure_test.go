package plotly

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFigure_ScatterJSON(t *testing.T) {
	fig := NewFigure().AddTrace(NewScatter([]float64{1, 2}, []float64{3, 4}))

	p, err := fig.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[{"type":"scatter","x":[1,2],"y":[3,4]}],"layout":{},"config":{}}`, string(p))
}

func TestFigure_SurfaceAndLayout(t *testing.T) {
	layout := NewLayout().
		WithTitle("Surface").
		WithBackground("grey", "grey").
		WithFont(&Font{Color: "white"}).
		WithScene(&Scene{XAxis: NewAxis().WithTitle("X")}).
		WithAxes(NewAxis().WithTitle("X").WithTickColor("white").WithGridColor("lightgrey"), nil, nil)

	fig := NewFigure().
		AddTrace(NewSurface([][]float64{{1, 2}}).WithX([]float64{0, 1}).WithY([]float64{5}).WithName("s")).
		SetLayout(layout)

	v, err := fig.Value()
	require.NoError(t, err)

	want := map[string]any{
		"data": []any{
			map[string]any{
				"type": "surface",
				"name": "s",
				"x":    []any{0.0, 1.0},
				"y":    []any{5.0},
				"z":    []any{[]any{1.0, 2.0}},
			},
		},
		"layout": map[string]any{
			"title":         map[string]any{"text": "Surface"},
			"plot_bgcolor":  "grey",
			"paper_bgcolor": "grey",
			"font":          map[string]any{"color": "white"},
			"scene": map[string]any{
				"xaxis": map[string]any{"title": map[string]any{"text": "X"}},
			},
			"xaxis": map[string]any{
				"title":     map[string]any{"text": "X"},
				"tickcolor": "white",
				"gridcolor": "lightgrey",
			},
		},
		"config": map[string]any{},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("figure mismatch (-want +got):\n%s", diff)
	}
}

func TestHeatMap_MarshalJSON(t *testing.T) {
	p, err := json.Marshal(NewHeatMap([]float64{1}, []float64{2}, [][]float64{{3}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"heatmap","x":[1],"y":[2],"z":[[3]]}`, string(p))
}

func TestFigure_SetLayoutNil(t *testing.T) {
	fig := NewFigure().SetLayout(nil)
	require.NotNil(t, fig.Layout)
}
