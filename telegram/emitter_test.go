package telegram_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/spinlog/server/telegram"
	"github.com/spinlog/server/testutil"
)

func TestNewEmitter_RequiresToken(t *testing.T) {
	_, err := telegram.NewEmitterWithEndpoint("", "http://localhost/bot%s/%s")
	if err == nil {
		t.Fatal("expected an error for an empty token")
	}
}

func TestSendMessage(t *testing.T) {
	fake := testutil.NewFakeTelegram(t)
	emitter := fake.Emitter(t)

	err := emitter.SendMessage(100, "hello", telegram.Options{
		Buttons: [][]telegram.Button{{
			{Label: "Go", Data: "go_token"},
		}},
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	calls := fake.Calls("sendMessage")
	if len(calls) != 1 {
		t.Fatalf("expected 1 sendMessage call, got %d", len(calls))
	}
	if got := calls[0].Params.Get("chat_id"); got != "100" {
		t.Errorf("expected chat_id 100, got %q", got)
	}
	if got := calls[0].Params.Get("text"); got != "hello" {
		t.Errorf("expected text hello, got %q", got)
	}
	if markup := calls[0].Params.Get("reply_markup"); !strings.Contains(markup, "go_token") {
		t.Errorf("expected keyboard data in markup, got %s", markup)
	}
}

func TestSendMessage_PlatformFailure(t *testing.T) {
	fake := testutil.NewFakeTelegram(t)
	fake.FailMethod("sendMessage")
	emitter := fake.Emitter(t)

	err := emitter.SendMessage(100, "hello", telegram.Options{})
	if !errors.Is(err, telegram.ErrPlatformCall) {
		t.Fatalf("expected ErrPlatformCall, got %v", err)
	}
}

func TestEditMessage(t *testing.T) {
	fake := testutil.NewFakeTelegram(t)
	emitter := fake.Emitter(t)

	err := emitter.EditMessage(100, 7, "updated", telegram.Options{ParseMode: "Markdown"})
	if err != nil {
		t.Fatalf("EditMessage failed: %v", err)
	}

	calls := fake.Calls("editMessageText")
	if len(calls) != 1 {
		t.Fatalf("expected 1 editMessageText call, got %d", len(calls))
	}
	if got := calls[0].Params.Get("message_id"); got != "7" {
		t.Errorf("expected message_id 7, got %q", got)
	}
	if got := calls[0].Params.Get("parse_mode"); got != "Markdown" {
		t.Errorf("expected Markdown parse mode, got %q", got)
	}
}

// A failed plain ack falls back to one alert-style attempt before the
// failure is surfaced.
func TestAckInteraction_AlertFallback(t *testing.T) {
	fake := testutil.NewFakeTelegram(t)
	fake.FailMethod("answerCallbackQuery")
	emitter := fake.Emitter(t)

	err := emitter.AckInteraction("cb-1")
	if !errors.Is(err, telegram.ErrPlatformCall) {
		t.Fatalf("expected ErrPlatformCall after both attempts, got %v", err)
	}

	calls := fake.Calls("answerCallbackQuery")
	if len(calls) != 2 {
		t.Fatalf("expected plain ack plus alert fallback, got %d calls", len(calls))
	}
	if got := calls[1].Params.Get("show_alert"); got != "true" {
		t.Errorf("expected the second attempt to be an alert, got show_alert=%q", got)
	}
}
