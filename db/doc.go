/*
Package db handles database schema creation and connection brokering.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: registered Telegram users (one row per telegram_id)
  - choice_events: append-only affirm/decline decision log

	users 1──* choice_events

# Connection Broker

The database is reached through a pool sized to a single connection
(set via MaxOpenConns in main). All store access goes through the Broker:

	err := broker.WithConn(ctx, func(ctx context.Context, conn *sql.Conn) error {
		qctx, cancel := broker.QueryCtx(ctx)
		defer cancel()
		return conn.QueryRowContext(qctx, ...).Scan(...)
	})

WithConn guarantees release on every exit path and bounds acquisition with
an acquire timeout. Individual queries are bounded via QueryCtx. Failures
map onto three sentinels:

  - ErrResourceUnavailable: acquire timeout expired (pool starved)
  - ErrStoreTimeout: a query or statement exceeded its bound
  - ErrInvalidReference: a foreign key did not resolve at insert time

The broker never retries internally; retry policy belongs to callers.
*/
package db
