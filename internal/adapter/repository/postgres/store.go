package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/kyrylklymenko/BankingManagementSystem/internal/adapter/repository/repo_interfaces"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/domain"
	"github.com/kyrylklymenko/BankingManagementSystem/internal/logger"
)

const (
	maxTxAttempts  = 3
	retryBaseDelay = 25 * time.Millisecond
)

func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	// Configure connection pool for concurrent request handlers
	db.SetMaxIdleConns(20)
	db.SetMaxOpenConns(30)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(15 * time.Minute)

	return db, nil
}

var _ repo_interfaces.LedgerStore = (*Store)(nil)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Within runs fn in one serializable transaction, retrying serialization
// failures with backoff. Any error from fn rolls the whole transaction back.
func (s *Store) Within(ctx context.Context, fn func(tx repo_interfaces.LedgerTx) error) error {
	var lastErr error

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBaseDelay << (attempt - 1)):
			}
		}

		err := s.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return classifyStoreError(err)
		}

		lastErr = err
		logger.Info("ledger store retrying serialization failure", logger.Fields{
			"attempt": attempt + 1,
		})
	}

	logger.Error("ledger store transaction could not be serialized", lastErr, nil)
	return domain.ErrStoreConflict
}

func (s *Store) runOnce(ctx context.Context, fn func(tx repo_interfaces.LedgerTx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(&ledgerTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return code == "40001" || code == "40P01"
	}
	return false
}

// classifyStoreError keeps domain errors as-is and maps transport-level
// failures to domain.ErrStoreUnavailable so callers can tell a broken request
// from a broken store.
func classifyStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrInsufficientPoolFunds),
		errors.Is(err, domain.ErrInsufficientCardFunds),
		errors.Is(err, domain.ErrNoActiveDeposit),
		errors.Is(err, domain.ErrConflictingPendingRequest),
		errors.Is(err, domain.ErrAlreadyResolved):
		return err
	}

	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && strings.HasPrefix(string(pqErr.Code), "08") {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return err
}
