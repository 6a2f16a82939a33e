package notifier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestTelegramNotifier_Send(t *testing.T) {
	var (
		mu   sync.Mutex
		sent []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"bot","username":"sentinel_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			if err := r.ParseForm(); err != nil {
				t.Errorf("parse form: %v", err)
			}
			mu.Lock()
			sent = append(sent, r.FormValue("chat_id")+"|"+r.FormValue("parse_mode")+"|"+r.FormValue("text"))
			mu.Unlock()
			w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
		default:
			w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		}
	}))
	defer srv.Close()

	tn, err := NewTelegramNotifierWithEndpoint("TOKEN", "42", "", srv.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}
	if err := tn.Send(context.Background(), "<b>hi</b>"); err != nil {
		t.Fatalf("send: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(sent) != 1 || sent[0] != "42|HTML|<b>hi</b>" {
		t.Errorf("unexpected sent messages: %v", sent)
	}
}

func TestTelegramNotifier_HandleUpdate(t *testing.T) {
	var (
		mu   sync.Mutex
		sent []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"bot","username":"sentinel_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			if err := r.ParseForm(); err != nil {
				t.Errorf("parse form: %v", err)
			}
			mu.Lock()
			sent = append(sent, r.FormValue("chat_id")+"|"+r.FormValue("text"))
			mu.Unlock()
			w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
		default:
			w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		}
	}))
	defer srv.Close()

	tn, err := NewTelegramNotifierWithEndpoint("TOKEN", "42", "", srv.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}

	var handled []string
	handler := func(cmd string) string {
		handled = append(handled, cmd)
		return "lookback set to 20"
	}
	command := func(chatID int64) tgbotapi.Update {
		return tgbotapi.Update{Message: &tgbotapi.Message{
			Text:     "/lookback 20",
			Chat:     &tgbotapi.Chat{ID: chatID},
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 9}},
		}}
	}

	tn.handleUpdate(command(99), handler)
	mu.Lock()
	if len(handled) != 0 || len(sent) != 0 {
		t.Errorf("command from another chat must be ignored, handled=%v sent=%v", handled, sent)
	}
	mu.Unlock()

	tn.handleUpdate(tgbotapi.Update{Message: &tgbotapi.Message{Text: "hello", Chat: &tgbotapi.Chat{ID: 42}}}, handler)
	tn.handleUpdate(command(42), handler)
	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 || handled[0] != "/lookback 20" {
		t.Errorf("expected one handled command, got %v", handled)
	}
	if len(sent) != 1 || sent[0] != "42|lookback set to 20" {
		t.Errorf("unexpected replies: %v", sent)
	}
}

func TestNewTelegramNotifier_BadChatID(t *testing.T) {
	if _, err := NewTelegramNotifier("TOKEN", "not-a-number", ""); err == nil {
		t.Error("expected chat id error")
	}
}

type flakyNotifier struct {
	failures int
	calls    int
}

func (f *flakyNotifier) Send(_ context.Context, _ string) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("temporary")
	}
	return nil
}

func TestSendWithRetry(t *testing.T) {
	ok := &flakyNotifier{}
	if err := SendWithRetry(context.Background(), ok, "x", 3); err != nil || ok.calls != 1 {
		t.Errorf("expected single successful call, got %d / %v", ok.calls, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	failing := &flakyNotifier{failures: 10}
	if err := SendWithRetry(ctx, failing, "x", 3); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context cancellation, got %v", err)
	}

	none := &flakyNotifier{failures: 1}
	if err := SendWithRetry(context.Background(), none, "x", 0); err == nil || none.calls != 1 {
		t.Errorf("expected exhausted retries after one attempt, got %d / %v", none.calls, err)
	}
}
