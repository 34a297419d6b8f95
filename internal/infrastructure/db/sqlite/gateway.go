package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/spendwise/expense-ledger/internal/api/metrics"
	"github.com/spendwise/expense-ledger/internal/core/domain"
)

// DefaultMaxAttempts bounds the gateway's retry budget per execution.
const DefaultMaxAttempts = 3

// Gateway runs SQL work units with bounded retries. Each attempt gets its own
// transaction, committed on success and rolled back before the next attempt.
// Only transient sqlite errors (BUSY, LOCKED) are retried; constraint
// violations and other programming errors propagate immediately, untouched.
// After the budget is exhausted the last error surfaces wrapped in
// domain.ErrStorage.
type Gateway struct {
	db          *sql.DB
	maxAttempts int
	logger      zerolog.Logger
}

func NewGateway(db *sql.DB, maxAttempts int, logger zerolog.Logger) *Gateway {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Gateway{db: db, maxAttempts: maxAttempts, logger: logger}
}

// Execute runs fn inside a transaction, retrying transient failures.
func (g *Gateway) Execute(ctx context.Context, fn func(tx *sql.Tx) error) error {
	var last error

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		err := g.attempt(ctx, fn)
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return err
		}

		last = err
		metrics.StorageRetriesTotal.Inc()
		g.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", g.maxAttempts).
			Msg("transient storage error")
	}

	return fmt.Errorf("%w: %v", domain.ErrStorage, last)
}

func (g *Gateway) attempt(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return err
	}
	return nil
}

// isTransient classifies sqlite errors worth retrying: lock contention
// resolves on a later attempt, everything else will not.
func isTransient(err error) bool {
	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

// isConstraintViolation reports whether err is a SQLITE_CONSTRAINT family
// error (unique, foreign key, check).
func isConstraintViolation(err error) bool {
	var se *sqlitedrv.Error
	return errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
