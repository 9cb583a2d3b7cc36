package signal

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultTimeSamples  = 100
	DefaultTimeMin      = 0.0   // seconds
	DefaultTimeMax      = 600.0 // seconds
	DefaultAngleSamples = 50
	DefaultAngleMin     = -180.0 // degrees
	DefaultAngleMax     = 180.0  // degrees

	baseline       = 70.0 // dB
	swing          = 10.0 // dB
	noiseAmplitude = 5.0  // dB
	angleDivisor   = 90.0
	timeDivisor    = 300.0
)

// Params controls the shape of the generated surface.
type Params struct {
	TimeSamples  int     `json:"timeSamples" yaml:"timeSamples"`
	TimeMin      float64 `json:"timeMin" yaml:"timeMin"`
	TimeMax      float64 `json:"timeMax" yaml:"timeMax"`
	AngleSamples int     `json:"angleSamples" yaml:"angleSamples"`
	AngleMin     float64 `json:"angleMin" yaml:"angleMin"`
	AngleMax     float64 `json:"angleMax" yaml:"angleMax"`
}

// DefaultParams returns 100 time steps over [0, 600] s and 50 azimuth steps
// over [-180, 180] degrees.
func DefaultParams() Params {
	return Params{
		TimeSamples:  DefaultTimeSamples,
		TimeMin:      DefaultTimeMin,
		TimeMax:      DefaultTimeMax,
		AngleSamples: DefaultAngleSamples,
		AngleMin:     DefaultAngleMin,
		AngleMax:     DefaultAngleMax,
	}
}

func (p Params) Validate() error {
	var errs []error
	if p.TimeSamples < 2 {
		errs = append(errs, fmt.Errorf("time samples must be at least 2, got %d", p.TimeSamples))
	}
	if p.AngleSamples < 2 {
		errs = append(errs, fmt.Errorf("angle samples must be at least 2, got %d", p.AngleSamples))
	}
	if !(p.TimeMin < p.TimeMax) {
		errs = append(errs, fmt.Errorf("time range [%g, %g] is empty", p.TimeMin, p.TimeMax))
	}
	if !(p.AngleMin < p.AngleMax) {
		errs = append(errs, fmt.Errorf("angle range [%g, %g] is empty", p.AngleMin, p.AngleMax))
	}
	for _, v := range []float64{p.TimeMin, p.TimeMax, p.AngleMin, p.AngleMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, errors.New("axis bounds must be finite"))
			break
		}
	}
	return errors.Join(errs...)
}

// Strength is the noise-free part of the model at the given azimuth
// (degrees) and time (seconds).
func Strength(angle, t float64) float64 {
	return baseline + swing*math.Sin(angle*(math.Pi/180)/angleDivisor)*math.Cos(t/timeDivisor)
}

// Generate builds a fresh surface. Each cell adds 5*U to Strength, with one
// independent U drawn from src per cell. A nil src means GlobalSource.
func Generate(p Params, src Source) (*Surface, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator params: %w", err)
	}
	if src == nil {
		src = GlobalSource
	}

	timeAxis := NewAxis(p.TimeMin, p.TimeMax, p.TimeSamples)
	angleAxis := NewAxis(p.AngleMin, p.AngleMax, p.AngleSamples)

	grid := make([][]float64, angleAxis.Len())
	for i, angle := range angleAxis.Values {
		row := make([]float64, timeAxis.Len())
		for j, t := range timeAxis.Values {
			row[j] = Strength(angle, t) + noiseAmplitude*src.Float64()
		}
		grid[i] = row
	}

	return &Surface{
		Time:  timeAxis,
		Angle: angleAxis,
		Grid:  grid,
	}, nil
}

// Generator produces surfaces from a fixed, validated parameter set.
type Generator struct {
	params Params
	source Source
}

// WithSource replaces the random source used by the generator.
func WithSource(src Source) func(*Generator) {
	return func(g *Generator) {
		g.source = src
	}
}

// NewGenerator validates p once so that Generate never fails afterwards.
func NewGenerator(p Params, options ...func(*Generator)) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator params: %w", err)
	}

	g := Generator{
		params: p,
		source: GlobalSource,
	}
	for _, option := range options {
		option(&g)
	}
	if g.source == nil {
		g.source = GlobalSource
	}
	return &g, nil
}

// NewDefaultGenerator returns a generator with DefaultParams and GlobalSource.
func NewDefaultGenerator() *Generator {
	return &Generator{
		params: DefaultParams(),
		source: GlobalSource,
	}
}

func (g *Generator) Params() Params {
	return g.params
}

// Generate returns a new surface. It consumes one draw per cell from the
// generator's source.
func (g *Generator) Generate() *Surface {
	s, err := Generate(g.params, g.source)
	if err != nil {
		// params were validated in NewGenerator
		panic(err)
	}
	return s
}
