package telegram

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ErrPlatformCall means an outbound Telegram call was not delivered.
// Callers treat it as advisory - the platform cannot consume a locally
// raised failure, so it is never fatal to the pipeline.
var ErrPlatformCall = errors.New("platform call failed")

// callTimeout bounds every outbound platform call. The webhook answer has
// a fixed deadline; an unbounded send would starve it.
const callTimeout = 5 * time.Second

// Button is one inline-keyboard button: a visible label plus the opaque
// token Telegram returns when it is pressed.
type Button struct {
	Label string
	Data  string
}

// Options are the optional send/edit parameters.
type Options struct {
	ParseMode string
	Buttons   [][]Button
}

// Emitter wraps the outbound Telegram Bot API. Every operation is
// best-effort: failures are logged here and surfaced only for advisory use.
type Emitter struct {
	api *tgbotapi.BotAPI
}

// NewEmitter validates the token against the platform and returns an
// emitter bound to it. An absent or rejected token is a startup error -
// the service refuses to run with a silent no-op outbound surface.
func NewEmitter(token string) (*Emitter, error) {
	return NewEmitterWithEndpoint(token, tgbotapi.APIEndpoint)
}

// NewEmitterWithEndpoint targets a non-default API endpoint. Tests use it
// to point the emitter at a local fake server.
func NewEmitterWithEndpoint(token, endpoint string) (*Emitter, error) {
	if token == "" {
		return nil, errors.New("bot token is required")
	}

	client := &http.Client{Timeout: callTimeout}
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("connecting to bot API: %w", err)
	}

	slog.Info("bot API connected", "username", api.Self.UserName)
	return &Emitter{api: api}, nil
}

// AckInteraction answers a callback query so the client stops its loading
// spinner. If the plain acknowledgment fails, one alert-style attempt is
// made so the user still sees that something happened.
func (e *Emitter) AckInteraction(interactionID string) error {
	_, err := e.api.Request(tgbotapi.NewCallback(interactionID, ""))
	if err == nil {
		return nil
	}
	slog.Warn("callback ack failed, retrying as alert", "error", err)

	alert := tgbotapi.NewCallbackWithAlert(interactionID, "Something went wrong, please try again.")
	if _, alertErr := e.api.Request(alert); alertErr != nil {
		slog.Error("callback ack alert fallback failed", "error", alertErr)
		return fmt.Errorf("acknowledging interaction (%v): %w", err, ErrPlatformCall)
	}
	return nil
}

// SendMessage delivers a new message to a chat.
func (e *Emitter) SendMessage(chatID int64, text string, opts Options) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = opts.ParseMode
	if len(opts.Buttons) > 0 {
		msg.ReplyMarkup = keyboard(opts.Buttons)
	}

	if _, err := e.api.Send(msg); err != nil {
		slog.Error("send message failed", "chat_id", chatID, "error", err)
		return fmt.Errorf("sending message (%v): %w", err, ErrPlatformCall)
	}
	return nil
}

// EditMessage replaces the text (and keyboard) of an existing message.
func (e *Emitter) EditMessage(chatID int64, messageID int, text string, opts Options) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = opts.ParseMode
	if len(opts.Buttons) > 0 {
		markup := keyboard(opts.Buttons)
		edit.ReplyMarkup = &markup
	}

	if _, err := e.api.Send(edit); err != nil {
		slog.Error("edit message failed",
			"chat_id", chatID, "message_id", messageID, "error", err)
		return fmt.Errorf("editing message (%v): %w", err, ErrPlatformCall)
	}
	return nil
}

// SetWebhook registers url as the bot's webhook. The secret, when set, is
// echoed back by Telegram on every delivery and verified by the inbound
// handler. Issued via MakeRequest because the library's typed
// WebhookConfig predates the secret_token parameter.
func (e *Emitter) SetWebhook(url, secret string) error {
	params := tgbotapi.Params{"url": url}
	if secret != "" {
		params["secret_token"] = secret
	}

	if _, err := e.api.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("setting webhook (%v): %w", err, ErrPlatformCall)
	}
	return nil
}

func keyboard(rows [][]Button) tgbotapi.InlineKeyboardMarkup {
	kb := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		r := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			r = append(r, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		kb = append(kb, r)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kb...)
}
