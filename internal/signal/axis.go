package signal

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Axis is an ordered series of evenly spaced samples between Min and Max,
// both inclusive.
type Axis struct {
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Values []float64 `json:"values"`
}

// NewAxis returns an axis of n evenly spaced values from min to max.
// It panics if n is less than 2.
func NewAxis(min, max float64, n int) Axis {
	return Axis{
		Min:    min,
		Max:    max,
		Values: Linspace(min, max, n),
	}
}

// AxisFromValues wraps already computed values, e.g. ones read back from
// the capture archive.
func AxisFromValues(values []float64) (Axis, error) {
	if len(values) < 2 {
		return Axis{}, fmt.Errorf("axis needs at least 2 values, got %d", len(values))
	}
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return Axis{}, fmt.Errorf("axis is not strictly increasing at index %d", i)
		}
	}
	return Axis{
		Min:    values[0],
		Max:    values[len(values)-1],
		Values: slices.Clone(values),
	}, nil
}

// Linspace returns n values where v[k] = min + k*(max-min)/(n-1).
func Linspace(min, max float64, n int) []float64 {
	return floats.Span(make([]float64, n), min, max)
}

// Len returns the number of samples.
func (a Axis) Len() int {
	return len(a.Values)
}

// Step returns the distance between two neighbouring samples.
func (a Axis) Step() float64 {
	if len(a.Values) < 2 {
		return 0
	}
	return (a.Max - a.Min) / float64(len(a.Values)-1)
}
