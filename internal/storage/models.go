package storage

import (
	"time"

	"github.com/roman-kulish/signal-plots/internal/signal"
)

// Capture describes one archived surface.
type Capture struct {
	ID        int64          `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	Command   string         `json:"command"`             // Command that produced the surface
	Params    *signal.Params `json:"params,omitempty"`    // Generator parameters, nil if unknown
	RawParams *string        `json:"rawParams,omitempty"` // Params column as stored
}

// Row is one azimuth step of an archived surface.
type Row struct {
	Index  int       // angle index
	Angle  float64   // azimuth in degrees
	Times  []float64 // time axis, seconds
	Values []float64 // signal strength, dB
}
