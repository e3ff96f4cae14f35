package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/spinlog/server/models"
)

func commandUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: len(text)},
			},
			Chat: &tgbotapi.Chat{ID: 100},
			From: &tgbotapi.User{ID: 42, UserName: "a", FirstName: "Ada"},
		},
	}
}

func callbackUpdate(data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-1",
			Data: data,
			From: &tgbotapi.User{ID: 42, UserName: "a"},
			Message: &tgbotapi.Message{
				MessageID: 7,
				Chat:      &tgbotapi.Chat{ID: 100},
			},
		},
	}
}

func TestClassify_StartCommand(t *testing.T) {
	event := Classify(commandUpdate("/start"))

	reg, ok := event.(Registration)
	if !ok {
		t.Fatalf("expected Registration, got %T", event)
	}
	if reg.ChatID != 100 {
		t.Errorf("expected chat id 100, got %d", reg.ChatID)
	}
	if reg.From.TelegramID != 42 || reg.From.Username != "a" {
		t.Errorf("identity not carried: %+v", reg.From)
	}
}

func TestClassify_ChoiceRequest(t *testing.T) {
	event := Classify(callbackUpdate(models.TokenChoiceRequest))

	req, ok := event.(ChoiceRequest)
	if !ok {
		t.Fatalf("expected ChoiceRequest, got %T", event)
	}
	if req.InteractionID != "cb-1" || req.ChatID != 100 {
		t.Errorf("unexpected fields: %+v", req)
	}
}

func TestClassify_Decisions(t *testing.T) {
	tests := []struct {
		data   string
		value  int
		status string
	}{
		{"affirm_0", 0, models.StatusAffirmed},
		{"affirm_36", 36, models.StatusAffirmed},
		{"decline_17", 17, models.StatusDeclined},
	}

	for _, tt := range tests {
		event := Classify(callbackUpdate(tt.data))

		decision, ok := event.(ChoiceDecision)
		if !ok {
			t.Errorf("%q: expected ChoiceDecision, got %T", tt.data, event)
			continue
		}
		if decision.Value != tt.value {
			t.Errorf("%q: expected value %d, got %d", tt.data, tt.value, decision.Value)
		}
		if decision.Status != tt.status {
			t.Errorf("%q: expected status %q, got %q", tt.data, tt.status, decision.Status)
		}
		if decision.MessageID != 7 {
			t.Errorf("%q: expected message id 7, got %d", tt.data, decision.MessageID)
		}
	}
}

func TestClassify_Unrecognized(t *testing.T) {
	tests := []struct {
		name string
		upd  tgbotapi.Update
	}{
		{"empty update", tgbotapi.Update{}},
		{"plain message", tgbotapi.Update{Message: &tgbotapi.Message{
			Text: "hello",
			Chat: &tgbotapi.Chat{ID: 100},
			From: &tgbotapi.User{ID: 42},
		}}},
		{"unknown command", commandUpdate("/help")},
		{"unknown token", callbackUpdate("mystery")},
		{"malformed decision value", callbackUpdate("affirm_xyz")},
		{"bare prefix", callbackUpdate("affirm_")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := Classify(tt.upd)
			if _, ok := event.(Unrecognized); !ok {
				t.Errorf("expected Unrecognized, got %T", event)
			}
		})
	}
}

// A callback with no originating message still surfaces its interaction id
// so the dispatcher can acknowledge it.
func TestClassify_CallbackWithoutMessage(t *testing.T) {
	event := Classify(tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-orphan",
			Data: models.TokenChoiceRequest,
			From: &tgbotapi.User{ID: 42},
		},
	})

	unrec, ok := event.(Unrecognized)
	if !ok {
		t.Fatalf("expected Unrecognized, got %T", event)
	}
	if unrec.InteractionID != "cb-orphan" {
		t.Errorf("expected interaction id to be carried, got %q", unrec.InteractionID)
	}
}
