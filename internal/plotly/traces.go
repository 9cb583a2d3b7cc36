package plotly

import "encoding/json"

const (
	TypeScatter = "scatter"
	TypeSurface = "surface"
	TypeHeatMap = "heatmap"
)

// Scatter is a 2D scatter/line trace.
type Scatter struct {
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
	Name string    `json:"name,omitempty"`
	Mode string    `json:"mode,omitempty"`
}

func NewScatter(x, y []float64) *Scatter {
	return &Scatter{X: x, Y: y}
}

func (s *Scatter) TraceType() string { return TypeScatter }

func (s *Scatter) MarshalJSON() ([]byte, error) {
	type alias Scatter
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{TypeScatter, (*alias)(s)})
}

// Surface is a 3D surface trace. Z is indexed [y][x].
type Surface struct {
	X    []float64   `json:"x,omitempty"`
	Y    []float64   `json:"y,omitempty"`
	Z    [][]float64 `json:"z"`
	Name string      `json:"name,omitempty"`
}

func NewSurface(z [][]float64) *Surface {
	return &Surface{Z: z}
}

func (s *Surface) WithX(x []float64) *Surface {
	s.X = x
	return s
}

func (s *Surface) WithY(y []float64) *Surface {
	s.Y = y
	return s
}

func (s *Surface) WithName(name string) *Surface {
	s.Name = name
	return s
}

func (s *Surface) TraceType() string { return TypeSurface }

func (s *Surface) MarshalJSON() ([]byte, error) {
	type alias Surface
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{TypeSurface, (*alias)(s)})
}

// HeatMap is a 2D heatmap trace. Z is indexed [y][x].
type HeatMap struct {
	X    []float64   `json:"x"`
	Y    []float64   `json:"y"`
	Z    [][]float64 `json:"z"`
	Name string      `json:"name,omitempty"`
}

func NewHeatMap(x, y []float64, z [][]float64) *HeatMap {
	return &HeatMap{X: x, Y: y, Z: z}
}

func (h *HeatMap) TraceType() string { return TypeHeatMap }

func (h *HeatMap) MarshalJSON() ([]byte, error) {
	type alias HeatMap
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{TypeHeatMap, (*alias)(h)})
}
