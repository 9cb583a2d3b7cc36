package storage

import (
	"context"

	"github.com/roman-kulish/signal-plots/internal/signal"
)

// Store archives generated signal surfaces. Writes of a single surface are
// atomic.
type Store interface {
	// CreateCapture registers a new, empty capture and returns its identifier.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeouts
	//   - command: Name of the command that produced the data
	//   - params: Optional generator parameters. Can be string, []byte or JSON-serializable object
	//
	// Returns:
	//   - captureID: Unique identifier for the created capture
	//   - error: If creation fails or context is cancelled
	CreateCapture(ctx context.Context, command string, params any) (captureID int64, err error)

	// StoreSurface saves every cell of s under an existing capture in a single
	// transaction.
	StoreSurface(ctx context.Context, captureID int64, s *signal.Surface) error

	// RecordSurface creates a capture and stores s in one transaction.
	RecordSurface(ctx context.Context, command string, s *signal.Surface) (captureID int64, err error)

	// Capture returns a capture by its ID, or ErrNotFound.
	Capture(ctx context.Context, id int64) (*Capture, error)

	// Captures returns all captures ordered by creation time.
	Captures(ctx context.Context) ([]*Capture, error)

	// ReadSurface rebuilds an archived surface.
	ReadSurface(ctx context.Context, captureID int64) (*signal.Surface, error)

	// Close releases all database connections. It is safe to call Close
	// multiple times.
	Close() error
}
