package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roman-kulish/signal-plots/internal/signal"
)

const defaultMaxBatchSize = 500

// ErrNotFound is returned when a capture does not exist.
var ErrNotFound = errors.New("capture not found")

// WithMaxBatchSize sets the maximum number of samples written by a single
// INSERT statement.
func WithMaxBatchSize(size int) func(*SqliteStore) {
	return func(s *SqliteStore) {
		if size > 0 {
			s.maxBatchSize = size
		}
	}
}

// SqliteStore handles database operations
type SqliteStore struct {
	dbPath       string
	maxBatchSize int
	now          func() time.Time

	writeDB     *sql.DB
	writeDBOnce sync.Once
	writeDBErr  error

	readDB     *sql.DB
	readDBOnce sync.Once
	readDBErr  error

	closeOnce sync.Once
	closeErr  error
}

var _ Store = (*SqliteStore)(nil)

// NewSqliteStore creates a store backed by the Sqlite database at dbPath.
// Connections are opened lazily; the schema is created on first write.
func NewSqliteStore(dbPath string, options ...func(*SqliteStore)) *SqliteStore {
	s := SqliteStore{
		dbPath:       dbPath,
		maxBatchSize: defaultMaxBatchSize,
		now:          time.Now,
	}
	for _, option := range options {
		option(&s)
	}
	return &s
}

func runSQLCommand(db *sql.DB, sql string) error {
	_, err := db.Exec(sql)
	return err
}

func (s *SqliteStore) getWriteDB() (*sql.DB, error) {
	s.writeDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", s.dbPath, "_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on"))
		if err != nil {
			s.writeDBErr = fmt.Errorf("opening write connection: %w", err)
			return
		}
		db.SetMaxOpenConns(1)

		if err = runSQLCommand(db, initSchemaSQL); err != nil {
			_ = db.Close()
			s.writeDBErr = fmt.Errorf("initializing schema: %w", err)
			return
		}

		s.writeDB = db
	})

	return s.writeDB, s.writeDBErr
}

func (s *SqliteStore) getReadDB() (*sql.DB, error) {
	s.readDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", s.dbPath, "mode=ro"))
		if err != nil {
			s.readDBErr = fmt.Errorf("opening read connection: %w", err)
			return
		}
		s.readDB = db
	})

	return s.readDB, s.readDBErr
}

func (s *SqliteStore) CreateCapture(ctx context.Context, command string, params any) (captureID int64, err error) {
	db, err := s.getWriteDB()
	if err != nil {
		return 0, fmt.Errorf("getting write connection: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollbackWithError(tx, &err)

	if captureID, err = s.insertCapture(ctx, tx, command, params); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return captureID, nil
}

func (s *SqliteStore) StoreSurface(ctx context.Context, captureID int64, surface *signal.Surface) (err error) {
	if surface == nil || surface.Rows() == 0 {
		return nil
	}

	db, err := s.getWriteDB()
	if err != nil {
		return fmt.Errorf("getting write connection: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollbackWithError(tx, &err)

	if err = s.insertSamples(ctx, tx, captureID, surface); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SqliteStore) RecordSurface(ctx context.Context, command string, surface *signal.Surface) (captureID int64, err error) {
	if surface == nil {
		return 0, errors.New("surface is required")
	}

	db, err := s.getWriteDB()
	if err != nil {
		return 0, fmt.Errorf("getting write connection: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollbackWithError(tx, &err)

	if captureID, err = s.insertCapture(ctx, tx, command, surface.Params()); err != nil {
		return 0, err
	}
	if err = s.insertSamples(ctx, tx, captureID, surface); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return captureID, nil
}

func (s *SqliteStore) insertCapture(ctx context.Context, tx *sql.Tx, command string, params any) (captureID int64, err error) {
	paramsData, err := encodeParams(params)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, insertCaptureSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer closeWithError(stmt, &err)

	result, err := stmt.ExecContext(ctx, s.now().UTC(), command, paramsData)
	if err != nil {
		return 0, fmt.Errorf("inserting capture: %w", err)
	}

	captureID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting capture ID: %w", err)
	}
	return captureID, nil
}

type sampleData struct {
	AngleIndex int
	TimeIndex  int
	Angle      float64
	Time       float64
	Strength   float64
}

func (s *SqliteStore) insertSamples(ctx context.Context, tx *sql.Tx, captureID int64, surface *signal.Surface) error {
	data := make([]sampleData, 0, surface.Rows()*surface.Cols())
	for i, row := range surface.Grid {
		for j, v := range row {
			data = append(data, sampleData{
				AngleIndex: i,
				TimeIndex:  j,
				Angle:      surface.Angle.Values[i],
				Time:       surface.Time.Values[j],
				Strength:   v,
			})
		}
	}

	const valuesPlaceholder = "(?, ?, ?, ?, ?, ?)"

	for chunk := range slices.Chunk(data, s.maxBatchSize) {
		values := make([]any, 0, len(chunk)*6)

		var sb strings.Builder
		sb.WriteString(insertSampleSQL)
		for i, d := range chunk {
			values = append(values, captureID, d.AngleIndex, d.TimeIndex, d.Angle, d.Time, d.Strength)
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(valuesPlaceholder)
		}

		if _, err := tx.ExecContext(ctx, sb.String(), values...); err != nil {
			return fmt.Errorf("batch inserting samples: %w", err)
		}
	}
	return nil
}

func (s *SqliteStore) Capture(ctx context.Context, id int64) (capture *Capture, err error) {
	db, err := s.getReadDB()
	if err != nil {
		return nil, fmt.Errorf("getting read connection: %w", err)
	}

	stmt, err := db.PrepareContext(ctx, selectCaptureSQL)
	if err != nil {
		return nil, fmt.Errorf("preparing statement: %w", err)
	}
	defer closeWithError(stmt, &err)

	c, err := scanCapture(stmt.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *SqliteStore) Captures(ctx context.Context) (captures []*Capture, err error) {
	db, err := s.getReadDB()
	if err != nil {
		return nil, fmt.Errorf("getting read connection: %w", err)
	}

	rows, err := db.QueryContext(ctx, selectCapturesSQL)
	if err != nil {
		return nil, fmt.Errorf("querying captures: %w", err)
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		c, err := scanCapture(rows)
		if err != nil {
			return nil, err
		}
		captures = append(captures, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating captures: %w", err)
	}
	return captures, nil
}

func scanCapture(row interface{ Scan(...any) error }) (*Capture, error) {
	var c Capture
	var params sql.NullString
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.Command, &params); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning capture: %w", err)
	}
	if params.Valid {
		c.RawParams = &params.String
		c.Params = decodeParams(params)
	}
	return &c, nil
}

// ReadRows returns an iterator over the azimuth rows of a capture.
// The reader must be closed after use.
func (s *SqliteStore) ReadRows(ctx context.Context, captureID int64) (*RowReader, error) {
	db, err := s.getReadDB()
	if err != nil {
		return nil, fmt.Errorf("getting read connection: %w", err)
	}
	return newRowReader(ctx, db, captureID)
}

func (s *SqliteStore) ReadSurface(ctx context.Context, captureID int64) (surface *signal.Surface, err error) {
	if _, err = s.Capture(ctx, captureID); err != nil {
		return nil, err
	}

	reader, err := s.ReadRows(ctx, captureID)
	if err != nil {
		return nil, err
	}
	defer closeWithError(reader, &err)

	var times, angles []float64
	var grid [][]float64
	for reader.Next(ctx) {
		row := reader.Current()
		if times == nil {
			times = row.Times
		} else if len(row.Times) != len(times) {
			return nil, fmt.Errorf("row %d has %d samples, expected %d", row.Index, len(row.Times), len(times))
		}
		angles = append(angles, row.Angle)
		grid = append(grid, row.Values)
	}
	if err = reader.Error(); err != nil {
		return nil, fmt.Errorf("reading samples: %w", err)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("capture %d has no samples", captureID)
	}

	timeAxis, err := signal.AxisFromValues(times)
	if err != nil {
		return nil, fmt.Errorf("time axis: %w", err)
	}
	angleAxis, err := signal.AxisFromValues(angles)
	if err != nil {
		return nil, fmt.Errorf("angle axis: %w", err)
	}
	return signal.NewSurface(timeAxis, angleAxis, grid)
}

func (s *SqliteStore) Close() error {
	s.closeOnce.Do(func() {
		var writeErr, readErr error

		if s.writeDB != nil {
			writeErr = s.writeDB.Close()
			s.writeDB = nil
		}

		if s.readDB != nil {
			readErr = s.readDB.Close()
			s.readDB = nil
		}

		s.closeErr = errors.Join(writeErr, readErr)
	})

	return s.closeErr
}
