/*
Package router defines the HTTP route table.

# Routes

	POST /telegram                   → webhook deliveries from Telegram
	GET  /api/dashboard/stats        → user/event counters
	GET  /api/dashboard/frequencies  → affirmed counts per value
	GET  /api/dashboard/activity     → recent decisions with user fields
	POST /admin/webhook              → register the webhook (X-Admin-Key)
	GET  /health                     → health check
	GET  /                           → API banner

Uses Go 1.22+ method-pattern routing on the standard ServeMux. All
business routes are wrapped with middleware.WithLogging.
*/
package router
