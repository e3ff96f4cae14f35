package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/spinlog/server/auth"
	"github.com/spinlog/server/cliparse"
	"github.com/spinlog/server/middleware"
	"github.com/spinlog/server/models"
	"github.com/spinlog/server/telegram"
)

type AdminHandler struct {
	emitter *telegram.Emitter
	cfg     cliparse.Config
}

func NewAdminHandler(emitter *telegram.Emitter, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{emitter: emitter, cfg: cfg}
}

// SetWebhook handles POST /admin/webhook
//
// Registers PUBLIC_URL/telegram as the bot's webhook, passing the secret
// token when one is configured so inbound deliveries can be authenticated.
func (h *AdminHandler) SetWebhook(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	if h.cfg.PublicURL == "" {
		middleware.ErrorResponse(w, http.StatusConflict, "PUBLIC_URL not configured")
		return
	}

	url := strings.TrimRight(h.cfg.PublicURL, "/") + "/telegram"
	if err := h.emitter.SetWebhook(url, h.cfg.WebhookSecret); err != nil {
		slog.Error("webhook registration failed", "url", url, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to register webhook")
		return
	}

	slog.Info("webhook registered", "url", url)
	middleware.JSONResponse(w, http.StatusOK, models.SetWebhookResponse{WebhookURL: url})
}
