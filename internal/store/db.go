package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"jobtrack-engine/internal/domain"
)

// Store is the durable home of Application records. Handlers receive a
// *Store explicitly; there is no package-level handle.
type Store struct {
	db  *sql.DB
	lim domain.Limits
	now func() time.Time
	rev atomic.Uint64
}

// Open opens (creating if needed) the applications database at path and
// runs migrations. Idempotent; safe to call on an existing file.
func Open(path string, lim domain.Limits) (*Store, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	pool.SetMaxOpenConns(1) // sqlite typically wants 1 writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := migrate(pool); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("%w: migrate: %v", ErrUnavailable, err)
	}

	if lim.Now == nil {
		lim.Now = time.Now
	}
	return &Store{db: pool, lim: lim, now: lim.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Revision is a monotonic counter bumped on every successful write. The
// query cache folds it into its key so stale derivations never survive a
// write.
func (s *Store) Revision() uint64 {
	return s.rev.Load()
}

func (s *Store) bump() {
	s.rev.Add(1)
}

// Checkpoint flushes the WAL. Wired to the periodic maintenance task and
// the localhost-only /db/checkpoint endpoint.
func (s *Store) Checkpoint(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(FULL);`)
	return err
}
