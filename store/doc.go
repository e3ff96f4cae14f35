/*
Package store implements the durable side of the pipeline: the user
directory and the append-only choice event recorder.

All access goes through the db.Broker - no component in this package holds
a connection across calls, and nothing is cached in process memory, so
every lookup is a fresh round-trip through the single shared connection.

# User Directory

	userID, err := directory.EnsureUser(ctx, identity)

Idempotent per identity. Insert races from duplicate deliveries are
absorbed: the loser re-selects the winner's row.

# Event Recorder

	eventID, err := recorder.RecordChoice(ctx, userID, value, status)

One explicit transaction per call; value and status are validated before
the store is touched. Duplicate deliveries produce duplicate rows by
design - the table is a log of decisions, not a mutable flag.
*/
package store
