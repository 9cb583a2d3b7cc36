package signal

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_TimeAxis(t *testing.T) {
	s := NewDefaultGenerator().Generate()

	require.Len(t, s.Time.Values, 100)
	assert.Equal(t, 0.0, s.Time.Values[0])
	assert.InDelta(t, 600.0, s.Time.Values[99], 1e-9)

	step := 600.0 / 99
	for j := 1; j < len(s.Time.Values); j++ {
		diff := s.Time.Values[j] - s.Time.Values[j-1]
		assert.Greater(t, diff, 0.0, "time axis must be strictly increasing at %d", j)
		assert.InDelta(t, step, diff, 1e-9, "uneven spacing at %d", j)
	}
}

func TestGenerate_AngleAxis(t *testing.T) {
	s := NewDefaultGenerator().Generate()

	require.Len(t, s.Angle.Values, 50)
	assert.Equal(t, -180.0, s.Angle.Values[0])
	assert.InDelta(t, 180.0, s.Angle.Values[49], 1e-9)

	step := 360.0 / 49
	for i := 1; i < len(s.Angle.Values); i++ {
		diff := s.Angle.Values[i] - s.Angle.Values[i-1]
		assert.Greater(t, diff, 0.0, "angle axis must be strictly increasing at %d", i)
		assert.InDelta(t, step, diff, 1e-9, "uneven spacing at %d", i)
	}
}

func TestGenerate_GridDimensionsAndBounds(t *testing.T) {
	s := NewDefaultGenerator().Generate()

	require.Len(t, s.Grid, 50)
	for i, row := range s.Grid {
		require.Len(t, row, 100, "row %d", i)
		for j, v := range row {
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "cell (%d,%d) is not finite", i, j)
			assert.GreaterOrEqual(t, v, 60.0)
			assert.Less(t, v, 85.0)

			// tight bounds from the exact formula: |sin(x/90)| <= sin(pi/90)
			base := Strength(s.Angle.Values[i], s.Time.Values[j])
			assert.GreaterOrEqual(t, v, base)
			assert.Less(t, v, base+5)
		}
	}
}

func TestGenerate_ZeroSourceIsDeterministicFormula(t *testing.T) {
	s, err := Generate(DefaultParams(), ConstSource(0))
	require.NoError(t, err)

	for i, angle := range s.Angle.Values {
		for j, tm := range s.Time.Values {
			want := 70 + 10*math.Sin(angle*(math.Pi/180)/90)*math.Cos(tm/300)
			assert.InDelta(t, want, s.Grid[i][j], 1e-12, "cell (%d,%d)", i, j)
		}
	}
}

func TestGenerate_DrawsOncePerCell(t *testing.T) {
	src := &countingSource{}
	p := DefaultParams()
	_, err := Generate(p, src)
	require.NoError(t, err)
	assert.Equal(t, p.TimeSamples*p.AngleSamples, src.n)
}

func TestGenerate_AxesStableAcrossCalls(t *testing.T) {
	g := NewDefaultGenerator()
	a := g.Generate()
	b := g.Generate()

	assert.Equal(t, a.Time.Values, b.Time.Values)
	assert.Equal(t, a.Angle.Values, b.Angle.Values)

	for i := range a.Grid {
		for j := range a.Grid[i] {
			base := Strength(a.Angle.Values[i], a.Time.Values[j])
			assert.Less(t, math.Abs(a.Grid[i][j]-b.Grid[i][j]), 5.0)
			assert.GreaterOrEqual(t, b.Grid[i][j], base)
		}
	}
}

func TestGenerate_SeededSourceIsReproducible(t *testing.T) {
	a, err := Generate(DefaultParams(), NewSeededSource(42))
	require.NoError(t, err)
	b, err := Generate(DefaultParams(), NewSeededSource(42))
	require.NoError(t, err)
	c, err := Generate(DefaultParams(), NewSeededSource(7))
	require.NoError(t, err)

	assert.Equal(t, a.Grid, b.Grid)
	assert.NotEqual(t, a.Grid, c.Grid)
}

func TestGenerate_Concurrent(t *testing.T) {
	g, err := NewGenerator(DefaultParams(), WithSource(NewSeededSource(1)))
	require.NoError(t, err)

	var wg sync.WaitGroup
	surfaces := make([]*Surface, 8)
	for k := range surfaces {
		wg.Add(1)
		go func() {
			defer wg.Done()
			surfaces[k] = g.Generate()
		}()
	}
	wg.Wait()

	for _, s := range surfaces {
		require.NotNil(t, s)
		assert.Equal(t, 50, s.Rows())
		assert.Equal(t, 100, s.Cols())
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
		ok     bool
	}{
		{"defaults", func(*Params) {}, true},
		{"single time sample", func(p *Params) { p.TimeSamples = 1 }, false},
		{"no angle samples", func(p *Params) { p.AngleSamples = 0 }, false},
		{"inverted time range", func(p *Params) { p.TimeMin, p.TimeMax = 600, 0 }, false},
		{"empty angle range", func(p *Params) { p.AngleMax = p.AngleMin }, false},
		{"infinite bound", func(p *Params) { p.TimeMax = math.Inf(1) }, false},
		{"custom", func(p *Params) { p.TimeSamples, p.TimeMax = 10, 60 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			err := p.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewGenerator_RejectsInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.TimeSamples = 1
	_, err := NewGenerator(p)
	assert.Error(t, err)
}

type countingSource struct {
	n int
}

func (c *countingSource) Float64() float64 {
	c.n++
	return 0.5
}
