package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
)

// Store failure taxonomy. Callers discriminate with errors.Is.
var (
	// ErrResourceUnavailable means the pool could not hand out a connection
	// within the acquire timeout.
	ErrResourceUnavailable = errors.New("store connection unavailable")

	// ErrStoreTimeout means a query or statement exceeded its bound.
	ErrStoreTimeout = errors.New("store operation timed out")

	// ErrInvalidReference means a foreign key did not resolve at insert time.
	ErrInvalidReference = errors.New("invalid row reference")
)

// Postgres error codes used for discrimination.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// BrokerConfig bounds the two suspension points the broker owns.
type BrokerConfig struct {
	AcquireTimeout time.Duration
	QueryTimeout   time.Duration
}

// DefaultBrokerConfig keeps the full acquire+query budget inside the
// per-update processing deadline with room for the decision path's two
// store operations.
func DefaultBrokerConfig() BrokerConfig {
	return BrokerConfig{
		AcquireTimeout: 3 * time.Second,
		QueryTimeout:   5 * time.Second,
	}
}

// Broker owns acquisition of the shared database connection. The underlying
// pool is sized to a single connection by main (serverless tenancy), so
// WithConn is the global serialization point: concurrent updates queue here
// and fail fast once the acquire timeout expires.
type Broker struct {
	db  *sql.DB
	cfg BrokerConfig
}

func NewBroker(db *sql.DB, cfg BrokerConfig) *Broker {
	return &Broker{db: db, cfg: cfg}
}

// WithConn acquires a connection from the pool, invokes fn with it, and
// releases it on every exit path. Acquisition is bounded by AcquireTimeout
// and maps to ErrResourceUnavailable when exceeded. The broker never retries
// on behalf of callers - only they know whether their work is idempotent.
func (b *Broker) WithConn(ctx context.Context, fn func(context.Context, *sql.Conn) error) error {
	acquireCtx, cancel := context.WithTimeout(ctx, b.cfg.AcquireTimeout)
	defer cancel()

	conn, err := b.db.Conn(acquireCtx)
	if err != nil {
		slog.Error("connection acquire failed", "error", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("acquiring connection: %w", ErrResourceUnavailable)
		}
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	return fn(ctx, conn)
}

// QueryCtx derives a child context bounding a single query or statement.
func (b *Broker) QueryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.cfg.QueryTimeout)
}

// StoreErr maps driver-level failures onto the broker taxonomy. Deadline
// expiry becomes ErrStoreTimeout; everything else passes through unchanged.
func StoreErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%v: %w", err, ErrStoreTimeout)
	}
	return err
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, i.e. another writer won an insert race.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err is a Postgres foreign-key
// violation.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation
}
