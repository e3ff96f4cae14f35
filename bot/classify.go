package bot

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/spinlog/server/models"
)

// Event is the classified form of one inbound update. Classify produces
// exactly one concrete variant per update; Handle switches over them.
type Event interface {
	isEvent()
}

// Registration is the /start command.
type Registration struct {
	ChatID int64
	From   models.RemoteIdentity
}

// ChoiceRequest is a press of the "Random Number" button.
type ChoiceRequest struct {
	InteractionID string
	ChatID        int64
	From          models.RemoteIdentity
}

// ChoiceDecision is a press of an affirm or decline button.
type ChoiceDecision struct {
	InteractionID string
	ChatID        int64
	MessageID     int
	From          models.RemoteIdentity
	Value         int
	Status        string
}

// Unrecognized is anything else. InteractionID is non-empty when the
// update carried a callback query that still needs acknowledging.
type Unrecognized struct {
	InteractionID string
}

func (Registration) isEvent()   {}
func (ChoiceRequest) isEvent()  {}
func (ChoiceDecision) isEvent() {}
func (Unrecognized) isEvent()   {}

// Classify inspects an update and produces its event variant. Priority
// order: registration command, choice-request token, affirm/decline token,
// unrecognized.
func Classify(upd tgbotapi.Update) Event {
	if msg := upd.Message; msg != nil && msg.IsCommand() && msg.Command() == "start" {
		return Registration{
			ChatID: msg.Chat.ID,
			From:   identity(msg.From),
		}
	}

	if cb := upd.CallbackQuery; cb != nil {
		// A callback without its originating message gives us nowhere to
		// respond; acknowledge and drop.
		if cb.Message == nil {
			return Unrecognized{InteractionID: cb.ID}
		}

		if cb.Data == models.TokenChoiceRequest {
			return ChoiceRequest{
				InteractionID: cb.ID,
				ChatID:        cb.Message.Chat.ID,
				From:          identity(cb.From),
			}
		}

		if value, status, ok := parseDecision(cb.Data); ok {
			return ChoiceDecision{
				InteractionID: cb.ID,
				ChatID:        cb.Message.Chat.ID,
				MessageID:     cb.Message.MessageID,
				From:          identity(cb.From),
				Value:         value,
				Status:        status,
			}
		}

		return Unrecognized{InteractionID: cb.ID}
	}

	return Unrecognized{}
}

// parseDecision matches the <affirm|decline>_<integer> token pattern.
func parseDecision(data string) (value int, status string, ok bool) {
	var raw string
	switch {
	case strings.HasPrefix(data, models.TokenAffirmPrefix):
		raw, status = strings.TrimPrefix(data, models.TokenAffirmPrefix), models.StatusAffirmed
	case strings.HasPrefix(data, models.TokenDeclinePrefix):
		raw, status = strings.TrimPrefix(data, models.TokenDeclinePrefix), models.StatusDeclined
	default:
		return 0, "", false
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "", false
	}
	return value, status, true
}

func identity(u *tgbotapi.User) models.RemoteIdentity {
	if u == nil {
		return models.RemoteIdentity{}
	}
	return models.RemoteIdentity{
		TelegramID: u.ID,
		Username:   u.UserName,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
	}
}
