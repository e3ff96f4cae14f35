package router

import (
	"database/sql"
	"net/http"

	"github.com/spinlog/server/bot"
	"github.com/spinlog/server/cliparse"
	"github.com/spinlog/server/handlers"
	"github.com/spinlog/server/middleware"
	"github.com/spinlog/server/telegram"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, dispatcher *bot.Dispatcher, emitter *telegram.Emitter) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	webhookHandler := handlers.NewWebhookHandler(dispatcher, cfg)
	reportsHandler := handlers.NewReportsHandler(db)
	adminHandler := handlers.NewAdminHandler(emitter, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Telegram webhook (inbound transport boundary)
	mux.HandleFunc("POST /telegram", middleware.WithLogging(webhookHandler.Receive))

	// Dashboard reads (public, read-only aggregates)
	mux.HandleFunc("GET /api/dashboard/stats", middleware.WithLogging(reportsHandler.GetStats))
	mux.HandleFunc("GET /api/dashboard/frequencies", middleware.WithLogging(reportsHandler.GetFrequencies))
	mux.HandleFunc("GET /api/dashboard/activity", middleware.WithLogging(reportsHandler.GetActivity))

	// Operator endpoints
	mux.HandleFunc("POST /admin/webhook", middleware.WithLogging(adminHandler.SetWebhook))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("spinlog API v1"))
	})

	return mux
}
