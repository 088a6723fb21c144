// Package store persists unfurl lookup history in Postgres. The store is
// optional: a nil *Store disables every operation, and history writes are
// best-effort so a database outage never fails an unfurl.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sqlc-dev/pqtype"

	"unfurl/internal/model"
)

// Store wraps access to the lookups table on a shared, pooled *sql.DB.
type Store struct {
	DB *sql.DB
}

// New creates a Store over an existing database handle.
func New(database *sql.DB) *Store {
	return &Store{DB: database}
}

// Enabled reports whether history persistence is configured.
func (s *Store) Enabled() bool {
	return s != nil && s.DB != nil
}

// AddLookup records one unfurl attempt. preview may be nil for failures.
func (s *Store) AddLookup(ctx context.Context, url, outcome, errText string, duration time.Duration, preview *model.Preview) error {
	if !s.Enabled() {
		return nil
	}

	var payload pqtype.NullRawMessage
	if preview != nil {
		raw, err := json.Marshal(preview)
		if err != nil {
			return err
		}
		payload = pqtype.NullRawMessage{RawMessage: raw, Valid: true}
	}

	var sqlErr sql.NullString
	if errText != "" {
		sqlErr = sql.NullString{String: errText, Valid: true}
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO lookups (id, url, outcome, error, duration_ms, preview)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), url, outcome, sqlErr, duration.Milliseconds(), payload,
	)
	return err
}

// RecentLookups returns the newest lookup rows, capped at limit.
func (s *Store) RecentLookups(ctx context.Context, limit int) ([]model.Lookup, error) {
	if !s.Enabled() {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, url, outcome, error, duration_ms, preview, created_at
		 FROM lookups ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lookups := make([]model.Lookup, 0, limit)
	for rows.Next() {
		var (
			lk      model.Lookup
			errText sql.NullString
			payload pqtype.NullRawMessage
		)
		if err := rows.Scan(&lk.ID, &lk.URL, &lk.Outcome, &errText, &lk.DurationMs, &payload, &lk.CreatedAt); err != nil {
			return nil, err
		}
		if errText.Valid {
			lk.Error = errText.String
		}
		if payload.Valid {
			lk.Preview = json.RawMessage(payload.RawMessage)
		}
		lookups = append(lookups, lk)
	}
	return lookups, rows.Err()
}
