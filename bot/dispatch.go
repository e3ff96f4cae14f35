package bot

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/spinlog/server/models"
	"github.com/spinlog/server/store"
	"github.com/spinlog/server/telegram"
)

// User-facing texts.
const (
	welcomeText = "Welcome! Click the button to get a random number."
	dealLabel   = "Random Number"
)

// registrationTimeout bounds the detached registration write. It is
// independent of the triggering update's deadline: the write may outlive
// the response and must not be cancelled by it.
const registrationTimeout = 15 * time.Second

// Dispatcher drives one update through the pipeline: classify, respond on
// the fast path, then mutate the store on the slow path. There is no
// cross-update state; each Handle call is independent.
type Dispatcher struct {
	emitter *telegram.Emitter
	users   *store.Directory
	events  *store.Recorder

	// roll draws a value in [0, n). Tests swap it for determinism.
	roll func(n int) int
}

func New(emitter *telegram.Emitter, users *store.Directory, events *store.Recorder) *Dispatcher {
	return &Dispatcher{
		emitter: emitter,
		users:   users,
		events:  events,
		roll:    rand.IntN,
	}
}

// Handle processes one update to completion. The returned error reports
// the internal outcome only - the transport layer answers Telegram with
// HTTP 200 regardless, because a delivery retry storm helps nobody.
func (d *Dispatcher) Handle(ctx context.Context, deliveryID string, upd tgbotapi.Update) error {
	log := slog.With("delivery", deliveryID, "update_id", upd.UpdateID)

	switch ev := Classify(upd).(type) {
	case Registration:
		return d.handleRegistration(log, ev)
	case ChoiceRequest:
		return d.handleChoiceRequest(log, ev)
	case ChoiceDecision:
		return d.handleChoiceDecision(ctx, log, ev)
	case Unrecognized:
		if ev.InteractionID != "" {
			if err := d.emitter.AckInteraction(ev.InteractionID); err != nil {
				log.Warn("ack of unrecognized interaction failed", "error", err)
			}
		}
		log.Debug("unrecognized update ignored")
		return nil
	default:
		return nil
	}
}

// handleRegistration sends the welcome immediately and registers the user
// in a detached unit of work. A registration that never lands only delays
// a display-name row with no user-visible consequence, so it is shed from
// the critical path entirely.
func (d *Dispatcher) handleRegistration(log *slog.Logger, ev Registration) error {
	err := d.emitter.SendMessage(ev.ChatID, welcomeText, telegram.Options{
		Buttons: [][]telegram.Button{{
			{Label: dealLabel, Data: models.TokenChoiceRequest},
		}},
	})
	if err != nil {
		// No fallback exists for a failed welcome, and without it there is
		// no interaction to register the user for.
		log.Error("welcome message failed", "chat_id", ev.ChatID, "error", err)
		return nil
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("background registration panicked", "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), registrationTimeout)
		defer cancel()

		if _, err := d.users.EnsureUser(ctx, ev.From); err != nil {
			log.Error("background user registration failed",
				"telegram_id", ev.From.TelegramID, "error", err)
		}
	}()

	return nil
}

// handleChoiceRequest deals a value. Pure fast path - no store access.
func (d *Dispatcher) handleChoiceRequest(log *slog.Logger, ev ChoiceRequest) error {
	if err := d.emitter.AckInteraction(ev.InteractionID); err != nil {
		log.Warn("interaction ack failed", "error", err)
	}

	value := d.roll(models.ValueRange)
	// MarkdownV2 spoiler: the value is revealed when tapped.
	text := fmt.Sprintf("||%d||", value)

	err := d.emitter.SendMessage(ev.ChatID, text, telegram.Options{
		ParseMode: tgbotapi.ModeMarkdownV2,
		Buttons: [][]telegram.Button{{
			{Label: "✅", Data: fmt.Sprintf("%s%d", models.TokenAffirmPrefix, value)},
			{Label: "❌", Data: fmt.Sprintf("%s%d", models.TokenDeclinePrefix, value)},
		}},
	})
	if err != nil {
		log.Error("value message failed", "chat_id", ev.ChatID, "value", value, "error", err)
	}
	return nil
}

// handleChoiceDecision acknowledges and edits first, then blocks on the
// bounded slow path. The user has already seen a success-looking edit by
// the time persistence runs, so a store failure is a lost event: logged
// with full context, never retried here, and the edit is not reverted.
func (d *Dispatcher) handleChoiceDecision(ctx context.Context, log *slog.Logger, ev ChoiceDecision) error {
	if err := d.emitter.AckInteraction(ev.InteractionID); err != nil {
		log.Warn("interaction ack failed", "error", err)
	}

	text := fmt.Sprintf("You marked *%d* as _%s_.", ev.Value, ev.Status)
	err := d.emitter.EditMessage(ev.ChatID, ev.MessageID, text, telegram.Options{
		ParseMode: tgbotapi.ModeMarkdown,
	})
	if err != nil {
		log.Error("decision edit failed",
			"chat_id", ev.ChatID, "message_id", ev.MessageID, "error", err)
	}

	userID, err := d.users.EnsureUser(ctx, ev.From)
	if err != nil {
		log.Error("choice decision lost: user resolution failed",
			"telegram_id", ev.From.TelegramID,
			"value", ev.Value,
			"status", ev.Status,
			"error", err,
		)
		return fmt.Errorf("resolving user: %w", err)
	}

	if _, err := d.events.RecordChoice(ctx, userID, ev.Value, ev.Status); err != nil {
		log.Error("choice decision lost: record failed",
			"telegram_id", ev.From.TelegramID,
			"user_id", userID,
			"value", ev.Value,
			"status", ev.Status,
			"error", err,
		)
		return fmt.Errorf("recording choice: %w", err)
	}

	return nil
}
