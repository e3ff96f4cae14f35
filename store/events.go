package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spinlog/server/db"
	"github.com/spinlog/server/models"
)

var (
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidStatus   = errors.New("invalid status tag")
)

// Recorder appends choice events inside a transaction boundary it owns.
type Recorder struct {
	broker *db.Broker
}

func NewRecorder(broker *db.Broker) *Recorder {
	return &Recorder{broker: broker}
}

// RecordChoice inserts one event row and commits. The commit is the single
// durability point: callers observe either "fully recorded" or "not
// recorded", never a partial row. On any failure after the transaction has
// been opened a rollback is issued before the error propagates.
//
// A foreign-key violation on user_id maps to db.ErrInvalidReference. It
// should not occur given the calling contract (callers pass an id freshly
// resolved by the Directory), but users are never deleted, not asserted.
func (r *Recorder) RecordChoice(ctx context.Context, userID int64, value int, status string) (int64, error) {
	if value < 0 || value >= models.ValueRange {
		return 0, fmt.Errorf("%w: %d", ErrValueOutOfRange, value)
	}
	if status != models.StatusAffirmed && status != models.StatusDeclined {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var eventID int64
	err := r.broker.WithConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return db.StoreErr(err)
		}
		// Never leave the transaction open across this boundary.
		// Rollback after a successful commit is a no-op.
		defer tx.Rollback()

		qctx, cancel := r.broker.QueryCtx(ctx)
		defer cancel()
		err = tx.QueryRowContext(qctx, `
			INSERT INTO choice_events (user_id, value, status)
			VALUES ($1, $2, $3)
			RETURNING id
		`, userID, value, status).Scan(&eventID)
		if err != nil {
			if db.IsForeignKeyViolation(err) {
				return fmt.Errorf("user %d: %w", userID, db.ErrInvalidReference)
			}
			return db.StoreErr(err)
		}

		if err := tx.Commit(); err != nil {
			return db.StoreErr(err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("recording choice: %w", err)
	}

	slog.Info("choice recorded",
		"event_id", eventID,
		"user_id", userID,
		"value", value,
		"status", status,
	)
	return eventID, nil
}

// GetChoice fetches one event row by id. Returns sql.ErrNoRows when the
// event does not exist.
func (r *Recorder) GetChoice(ctx context.Context, eventID int64) (*models.ChoiceEvent, error) {
	var event models.ChoiceEvent

	err := r.broker.WithConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		qctx, cancel := r.broker.QueryCtx(ctx)
		defer cancel()

		err := conn.QueryRowContext(qctx, `
			SELECT id, user_id, value, status, created_at
			FROM choice_events WHERE id = $1
		`, eventID).Scan(
			&event.ID, &event.UserID, &event.Value, &event.Status, &event.CreatedAt,
		)
		return db.StoreErr(err)
	})
	if err != nil {
		return nil, err
	}

	return &event, nil
}
