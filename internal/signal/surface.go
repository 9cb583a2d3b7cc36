package signal

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Surface is a grid of simulated signal strength samples in dB indexed
// [angle][time].
type Surface struct {
	Time  Axis        `json:"time"`
	Angle Axis        `json:"angle"`
	Grid  [][]float64 `json:"grid"`
}

// NewSurface assembles a surface and checks that the grid matches the axes.
func NewSurface(timeAxis, angleAxis Axis, grid [][]float64) (*Surface, error) {
	if len(grid) != angleAxis.Len() {
		return nil, fmt.Errorf("grid has %d rows, angle axis has %d values", len(grid), angleAxis.Len())
	}
	for i, row := range grid {
		if len(row) != timeAxis.Len() {
			return nil, fmt.Errorf("grid row %d has %d cells, time axis has %d values", i, len(row), timeAxis.Len())
		}
	}
	return &Surface{Time: timeAxis, Angle: angleAxis, Grid: grid}, nil
}

// Rows returns the number of azimuth steps.
func (s *Surface) Rows() int {
	return len(s.Grid)
}

// Cols returns the number of time steps.
func (s *Surface) Cols() int {
	if len(s.Grid) == 0 {
		return 0
	}
	return len(s.Grid[0])
}

// Params reports the generator parameters that describe the surface axes.
func (s *Surface) Params() Params {
	return Params{
		TimeSamples:  s.Time.Len(),
		TimeMin:      s.Time.Min,
		TimeMax:      s.Time.Max,
		AngleSamples: s.Angle.Len(),
		AngleMin:     s.Angle.Min,
		AngleMax:     s.Angle.Max,
	}
}

// Cells returns all samples in row-major order.
func (s *Surface) Cells() []float64 {
	out := make([]float64, 0, s.Rows()*s.Cols())
	for _, row := range s.Grid {
		out = append(out, row...)
	}
	return out
}

// Stats summarises the samples of a surface.
type Stats struct {
	Cells  int     `json:"cells"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
}

func Summarize(s *Surface) Stats {
	cells := s.Cells()
	if len(cells) == 0 {
		return Stats{}
	}

	mean, std := stat.MeanStdDev(cells, nil)
	return Stats{
		Cells:  len(cells),
		Min:    floats.Min(cells),
		Max:    floats.Max(cells),
		Mean:   mean,
		StdDev: std,
	}
}
