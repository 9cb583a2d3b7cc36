package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// RowReader iterates over the rows of an archived surface, one azimuth step
// at a time. A RowReader is not safe for concurrent use.
type RowReader struct {
	rows    *sql.Rows
	current *Row
	pending *sampleData
	err     error
}

func newRowReader(ctx context.Context, db *sql.DB, captureID int64) (*RowReader, error) {
	if captureID <= 0 {
		return nil, fmt.Errorf("invalid capture ID %d", captureID)
	}

	rows, err := db.QueryContext(ctx, selectSamplesSQL, captureID)
	if err != nil {
		return nil, fmt.Errorf("querying samples: %w", err)
	}
	return &RowReader{rows: rows}, nil
}

func (r *RowReader) scanSample() (*sampleData, error) {
	var d sampleData
	if err := r.rows.Scan(&d.AngleIndex, &d.TimeIndex, &d.Angle, &d.Time, &d.Strength); err != nil {
		return nil, fmt.Errorf("scanning sample: %w", err)
	}
	return &d, nil
}

// Next advances to the next row and reports whether one is available.
func (r *RowReader) Next(ctx context.Context) bool {
	if r.err != nil || r.rows == nil {
		return false
	}

	var row *Row
	if r.pending != nil {
		row = r.startRow(r.pending)
		r.pending = nil
	}

	for {
		select {
		case <-ctx.Done():
			r.err = ctx.Err()
			return false
		default:
		}

		if !r.rows.Next() {
			r.current = row
			return row != nil
		}

		d, err := r.scanSample()
		if err != nil {
			r.err = err
			return false
		}

		if row == nil {
			row = r.startRow(d)
			continue
		}

		// angle index changed, the current row is complete
		if d.AngleIndex != row.Index {
			r.pending = d
			r.current = row
			return true
		}

		row.Times = append(row.Times, d.Time)
		row.Values = append(row.Values, d.Strength)
	}
}

func (r *RowReader) startRow(d *sampleData) *Row {
	return &Row{
		Index:  d.AngleIndex,
		Angle:  d.Angle,
		Times:  []float64{d.Time},
		Values: []float64{d.Strength},
	}
}

// Current returns the row read by the last successful call to Next.
func (r *RowReader) Current() *Row {
	return r.current
}

// Error returns the first error met during iteration.
func (r *RowReader) Error() error {
	if r.err != nil {
		return r.err
	}
	if r.rows != nil {
		return r.rows.Err()
	}
	return nil
}

func (r *RowReader) Close() error {
	if r.rows != nil {
		err := r.rows.Close()
		r.rows = nil
		r.current = nil
		r.pending = nil
		return err
	}
	return nil
}
