// Package plotly builds Plotly.js figure descriptions ({"data": [...],
// "layout": {...}}) that the front end hands straight to Plotly.newPlot.
package plotly

import (
	"encoding/json"
	"fmt"
)

// Trace is a single Plotly series. Implementations marshal to a JSON object
// carrying a "type" field.
type Trace interface {
	TraceType() string
}

// Figure is the top level Plotly document.
type Figure struct {
	Data   []Trace        `json:"data"`
	Layout *Layout        `json:"layout"`
	Config map[string]any `json:"config"`
}

func NewFigure() *Figure {
	return &Figure{
		Data:   make([]Trace, 0, 1),
		Layout: NewLayout(),
		Config: map[string]any{},
	}
}

func (f *Figure) AddTrace(t Trace) *Figure {
	f.Data = append(f.Data, t)
	return f
}

func (f *Figure) SetLayout(l *Layout) *Figure {
	if l == nil {
		l = NewLayout()
	}
	f.Layout = l
	return f
}

// JSON serializes the figure.
func (f *Figure) JSON() ([]byte, error) {
	p, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshaling figure: %w", err)
	}
	return p, nil
}

// Value returns the figure as a generic JSON value, as the UI receives it.
func (f *Figure) Value() (map[string]any, error) {
	p, err := f.JSON()
	if err != nil {
		return nil, err
	}

	var v map[string]any
	if err = json.Unmarshal(p, &v); err != nil {
		return nil, fmt.Errorf("decoding figure: %w", err)
	}
	return v, nil
}
