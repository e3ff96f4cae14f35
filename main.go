package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/spinlog/server/bot"
	"github.com/spinlog/server/cliparse"
	"github.com/spinlog/server/db"
	"github.com/spinlog/server/middleware"
	"github.com/spinlog/server/router"
	"github.com/spinlog/server/store"
	"github.com/spinlog/server/telegram"
)

func main() {
	var err error

	// Load .env if present; deployments set the environment directly.
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	dbConn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Serverless tenancy: one connection total, recycled when idle.
	dbConn.SetMaxOpenConns(1)
	dbConn.SetMaxIdleConns(1)
	dbConn.SetConnMaxIdleTime(10 * time.Second)

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Validate the bot token against the platform. A missing or rejected
	// token refuses startup - a pipeline that silently no-ops every
	// outbound call is worse than one that is visibly down.
	emitter, err := telegram.NewEmitter(cfg.BotToken)
	if err != nil {
		slog.Error("bot API setup failed", "error", err)
		os.Exit(1)
	}

	// Assemble the pipeline
	broker := db.NewBroker(dbConn, db.DefaultBrokerConfig())
	dispatcher := bot.New(emitter, store.NewDirectory(broker), store.NewRecorder(broker))

	// Create router
	mux := router.NewRouter(dbConn, cfg, dispatcher, emitter)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
