package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s, err := Generate(DefaultParams(), ConstSource(0.5))
	require.NoError(t, err)

	st := Summarize(s)
	assert.Equal(t, 5000, st.Cells)
	assert.LessOrEqual(t, st.Min, st.Mean)
	assert.GreaterOrEqual(t, st.Max, st.Mean)
	// the sine term is odd in the angle and the axis is symmetric
	assert.InDelta(t, 72.5, st.Mean, 1e-9)
	assert.False(t, math.IsNaN(st.StdDev))
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Summarize(&Surface{}))
}

func TestNewSurface_DimensionMismatch(t *testing.T) {
	timeAxis := NewAxis(0, 10, 3)
	angleAxis := NewAxis(-1, 1, 2)

	_, err := NewSurface(timeAxis, angleAxis, [][]float64{{1, 2, 3}})
	assert.Error(t, err)

	_, err = NewSurface(timeAxis, angleAxis, [][]float64{{1, 2, 3}, {1, 2}})
	assert.Error(t, err)

	s, err := NewSurface(timeAxis, angleAxis, [][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, s.Cells())
}

func TestAxisFromValues(t *testing.T) {
	a, err := AxisFromValues([]float64{0, 5, 10})
	require.NoError(t, err)
	assert.Equal(t, 0.0, a.Min)
	assert.Equal(t, 10.0, a.Max)
	assert.Equal(t, 5.0, a.Step())

	_, err = AxisFromValues([]float64{1})
	assert.Error(t, err)

	_, err = AxisFromValues([]float64{0, 2, 2})
	assert.Error(t, err)
}

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, Linspace(0, 1, 3))
	assert.Panics(t, func() { Linspace(0, 1, 1) })
}
