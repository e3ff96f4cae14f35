package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/spinlog/server/auth"
	"github.com/spinlog/server/bot"
	"github.com/spinlog/server/cliparse"
	"github.com/spinlog/server/middleware"
	"github.com/spinlog/server/models"
)

// processTimeout is the overall per-update deadline. Telegram redelivers
// when the webhook answer is slow, so everything downstream (broker
// acquire, queries, outbound calls) is bounded to fit inside it.
const processTimeout = 10 * time.Second

// secretTokenHeader is set by Telegram on every delivery when a secret
// was registered with setWebhook.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

type WebhookHandler struct {
	dispatcher *bot.Dispatcher
	cfg        cliparse.Config
}

func NewWebhookHandler(dispatcher *bot.Dispatcher, cfg cliparse.Config) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher, cfg: cfg}
}

// Receive handles POST /telegram.
//
// Every authenticated delivery is answered with HTTP 200, whatever the
// pipeline outcome - a non-200 would only make Telegram redeliver the same
// bytes and compound load. The body's ok field reports the internal result.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if h.cfg.WebhookSecret != "" {
		if !auth.SecureCompare(r.Header.Get(secretTokenHeader), h.cfg.WebhookSecret) {
			slog.Warn("webhook delivery with bad secret token", "remote", r.RemoteAddr)
			middleware.ErrorResponse(w, http.StatusUnauthorized, "bad secret token")
			return
		}
	}

	var upd tgbotapi.Update
	if err := middleware.ParseJSONBody(r, &upd); err != nil {
		slog.Warn("malformed update payload", "error", err)
		middleware.JSONResponse(w, http.StatusOK, models.WebhookAck{
			OK:        false,
			Error:     "malformed update",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	// Telegram reuses update_id across redeliveries; a fresh delivery id
	// correlates the log lines of this attempt, including its background
	// work.
	deliveryID := uuid.NewString()

	ctx, cancel := context.WithTimeout(r.Context(), processTimeout)
	defer cancel()

	ack := models.WebhookAck{OK: true, Timestamp: time.Now().UTC()}
	if err := h.dispatcher.Handle(ctx, deliveryID, upd); err != nil {
		slog.Error("update processing failed", "delivery", deliveryID, "error", err)
		ack.OK = false
		ack.Error = err.Error()
	}

	middleware.JSONResponse(w, http.StatusOK, ack)
}
