package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roman-kulish/signal-plots/internal/signal"
)

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}

func rollbackWithError(rb interface{ Rollback() error }, err *error) {
	if rbErr := rb.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) && *err == nil {
		*err = rbErr
	}
}

// encodeParams accepts a string, []byte or any JSON-serializable value.
func encodeParams(params any) (sql.NullString, error) {
	var out sql.NullString
	if params == nil {
		return out, nil
	}

	switch v := params.(type) {
	case string:
		out.String = v
	case []byte:
		out.String = string(v)
	default:
		p, err := json.Marshal(v)
		if err != nil {
			return out, fmt.Errorf("marshaling params: %w", err)
		}
		out.String = string(p)
	}
	out.Valid = true
	return out, nil
}

func decodeParams(raw sql.NullString) *signal.Params {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var p signal.Params
	if err := json.Unmarshal([]byte(raw.String), &p); err != nil {
		// params written by something other than RecordSurface
		return nil
	}
	return &p
}
