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

// Directory resolves Telegram identities to internal user ids, creating
// rows on first sight.
type Directory struct {
	broker *db.Broker
}

func NewDirectory(broker *db.Broker) *Directory {
	return &Directory{broker: broker}
}

// EnsureUser returns the internal id for identity, inserting a new row if
// none exists. Concurrent calls for the same identity are expected - a
// duplicate webhook delivery, or a command followed immediately by a button
// press - so a unique-constraint violation on insert means another writer
// won the race, and the winner's row is re-selected rather than failed.
//
// Display fields are written on first insert only and never refreshed.
func (d *Directory) EnsureUser(ctx context.Context, identity models.RemoteIdentity) (int64, error) {
	var userID int64

	err := d.broker.WithConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		id, err := d.lookup(ctx, conn, identity.TelegramID)
		if err == nil {
			userID = id
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return db.StoreErr(err)
		}

		qctx, cancel := d.broker.QueryCtx(ctx)
		defer cancel()
		err = conn.QueryRowContext(qctx, `
			INSERT INTO users (telegram_id, username, first_name, last_name)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, identity.TelegramID, nullable(identity.Username),
			nullable(identity.FirstName), nullable(identity.LastName)).Scan(&id)
		if err == nil {
			userID = id
			return nil
		}

		if db.IsUniqueViolation(err) {
			// Someone else inserted between our lookup and our insert.
			slog.Debug("user insert lost race, re-selecting",
				"telegram_id", identity.TelegramID)
			id, err = d.lookup(ctx, conn, identity.TelegramID)
			if err != nil {
				return db.StoreErr(err)
			}
			userID = id
			return nil
		}
		return db.StoreErr(err)
	})
	if err != nil {
		return 0, fmt.Errorf("ensuring user %d: %w", identity.TelegramID, err)
	}

	return userID, nil
}

// GetUser fetches a user record by Telegram id. Returns sql.ErrNoRows
// when the identity has never been registered.
func (d *Directory) GetUser(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User

	err := d.broker.WithConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		qctx, cancel := d.broker.QueryCtx(ctx)
		defer cancel()

		err := conn.QueryRowContext(qctx, `
			SELECT id, telegram_id, username, first_name, last_name, created_at
			FROM users WHERE telegram_id = $1
		`, telegramID).Scan(
			&user.ID, &user.TelegramID,
			&user.Username, &user.FirstName, &user.LastName,
			&user.CreatedAt,
		)
		return db.StoreErr(err)
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (d *Directory) lookup(ctx context.Context, conn *sql.Conn, telegramID int64) (int64, error) {
	qctx, cancel := d.broker.QueryCtx(ctx)
	defer cancel()

	var id int64
	err := conn.QueryRowContext(qctx, `
		SELECT id FROM users WHERE telegram_id = $1
	`, telegramID).Scan(&id)
	return id, err
}

// nullable maps empty display fields to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
