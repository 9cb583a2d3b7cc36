package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowerHistogram_NotEnoughSamples(t *testing.T) {
	h := NewPowerHistogram(defaultBinWidth, defaultMinSpan)
	for i := 0; i < minimumSampleCount-1; i++ {
		h.Update(70)
	}

	_, ok := h.PercentileBounds()
	assert.False(t, ok)
}

func TestPowerHistogram_IgnoresNonFinite(t *testing.T) {
	h := NewPowerHistogram(defaultBinWidth, defaultMinSpan)
	h.Update(math.NaN())
	h.Update(math.Inf(1))
	h.Update(math.Inf(-1))
	h.Update(70)

	assert.Equal(t, uint64(1), h.Count())
}

func TestPowerHistogram_WidensToMinimumSpan(t *testing.T) {
	h := NewPowerHistogram(defaultBinWidth, defaultMinSpan)
	for i := 0; i < 100; i++ {
		h.Update(70)
	}

	bounds, ok := h.PercentileBounds()
	require.True(t, ok)

	assert.InDelta(t, 70.0, bounds.Mean, 1e-9)
	assert.InDelta(t, defaultMinSpan*1.2, bounds.Span(), 1e-9)
	assert.InDelta(t, 70.0-3.6, bounds.Min, 0.2)
	assert.InDelta(t, 70.0+3.6, bounds.Max, 0.2)
}

func TestPowerHistogram_TrimsOutliers(t *testing.T) {
	h := NewPowerHistogram(1, 0)
	h.Update(0)
	for i := 0; i < 98; i++ {
		h.Update(50)
	}
	h.Update(100)

	bounds, ok := h.PercentileBounds()
	require.True(t, ok)

	// single bin [50, 51) plus the 10% margin
	assert.InDelta(t, 49.9, bounds.Min, 1e-9)
	assert.InDelta(t, 51.1, bounds.Max, 1e-9)
}

func TestPowerHistogram_Clear(t *testing.T) {
	h := NewPowerHistogram(defaultBinWidth, defaultMinSpan)
	for i := 0; i < 50; i++ {
		h.Update(float64(60 + i%10))
	}
	h.Clear()

	assert.Zero(t, h.Count())
	_, ok := h.PercentileBounds()
	assert.False(t, ok)
}
