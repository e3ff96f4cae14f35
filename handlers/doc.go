/*
Package handlers contains the HTTP surface of the server.

# Handler Types

Each handler is a struct created via a constructor with its dependencies:

  - WebhookHandler: the inbound transport boundary for Telegram updates
  - ReportsHandler: read-only dashboard aggregates
  - AdminHandler: operator actions (webhook registration)

# Webhook Contract

	POST /telegram → Receive

Deliveries are authenticated against the configured secret token when one
is set. Authenticated deliveries are always answered with HTTP 200 - even
for malformed payloads or pipeline failures - because any other status
makes Telegram redeliver the same update. The JSON body carries the real
outcome:

	{"ok": true, "timestamp": ...}
	{"ok": false, "error": "...", "timestamp": ...}

# Dashboard Reads

	GET /api/dashboard/stats        → totals and per-status counts
	GET /api/dashboard/frequencies  → affirmed counts grouped by value
	GET /api/dashboard/activity     → recent decisions joined with users

These queries go directly to the store; they never enter the update
pipeline and never contend for it beyond the shared connection.

# Admin Operations

	POST /admin/webhook → SetWebhook

Requires the X-Admin-Key header.
*/
package handlers
