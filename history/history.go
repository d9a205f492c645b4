// Package history keeps a log of address changes seen by the applet.
// Observations are stored in a local SQLite database; each applet run
// tags its rows with a session id.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/yllada/ip-applet/common"
)

const schema = `
CREATE TABLE IF NOT EXISTS observations (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session     TEXT NOT NULL,
	observed_at INTEGER NOT NULL,
	kind        TEXT NOT NULL,
	name        TEXT NOT NULL,
	address     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS observations_observed_at ON observations (observed_at);
`

// Observation is one recorded address.
type Observation struct {
	ID         int64
	Session    string
	ObservedAt time.Time
	Kind       common.ObservationKind
	Name       string
	Address    string
}

// Store records observations in SQLite.
type Store struct {
	mu      sync.Mutex
	db      *sql.DB
	session string
	now     func() time.Time
}

var _ common.Recorder = (*Store)(nil)

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrHistoryUnavailable, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %v", common.ErrHistoryUnavailable, err)
	}

	return &Store{
		db:      db,
		session: uuid.NewString(),
		now:     time.Now,
	}, nil
}

// OpenDefault opens the database in the user's data directory.
func OpenDefault() (*Store, error) {
	dir, err := common.GetDataDir()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrHistoryUnavailable, err)
	}
	return Open(filepath.Join(dir, common.HistoryFileName))
}

// Session returns the id tagging this store's rows.
func (s *Store) Session() string {
	return s.session
}

// Record stores one observation.
func (s *Store) Record(kind common.ObservationKind, name, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO observations (session, observed_at, kind, name, address) VALUES (?, ?, ?, ?, ?)`,
		s.session, s.now().UnixMilli(), string(kind), name, address,
	)
	if err != nil {
		return common.WrapError(err, "recording observation")
	}
	return nil
}

// Recent returns up to limit observations, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Observation, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session, observed_at, kind, name, address
		   FROM observations
		  ORDER BY observed_at DESC, id DESC
		  LIMIT ?`, limit)
	if err != nil {
		return nil, common.WrapError(err, "querying observations")
	}
	defer rows.Close()

	var result []Observation
	for rows.Next() {
		var (
			o    Observation
			ms   int64
			kind string
		)
		if err := rows.Scan(&o.ID, &o.Session, &ms, &kind, &o.Name, &o.Address); err != nil {
			return nil, common.WrapError(err, "scanning observation")
		}
		o.ObservedAt = time.UnixMilli(ms)
		o.Kind = common.ObservationKind(kind)
		result = append(result, o)
	}
	return result, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
