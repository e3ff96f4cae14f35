/*
Package main provides the entry point for the spinlog bot server.

Spinlog is a Telegram bot that deals random values in [0, 37) and records
each user's affirm/decline decisions in an append-only Postgres log, plus
a small JSON API feeding a reporting dashboard.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... BOT_TOKEN=... ADMIN_KEY=... go run .

Or with flags:

	go run . -p 8090 -d "postgres://..." --bot-token "..." --admin-key "..."

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - BOT_TOKEN (--bot-token): Telegram bot token
  - ADMIN_KEY (--admin-key): secret for operator endpoints

Optional settings:

  - PORT (-p): server port (default: 8090)
  - WEBHOOK_SECRET (--webhook-secret): delivery authentication token
  - PUBLIC_URL (--public-url): base URL for webhook registration

# Design Constraints

The database is a serverless tenancy reachable through a pool capped at a
single connection, and Telegram expects the webhook answered within a
short deadline or it redelivers. The pipeline therefore always issues the
user-visible response before attempting any store mutation, and every
potentially blocking operation is bounded by an explicit timeout.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP surface (webhook, dashboard reads, admin)
  - bot: update classification and dispatch (the pipeline core)
  - telegram: outbound Bot API emitter
  - store: user directory and choice event recorder
  - db: schema creation and the connection broker
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - auth: constant-time secret validation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
