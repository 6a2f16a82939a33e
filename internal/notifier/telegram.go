package notifier

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier delivers report text to a chat.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// NoopNotifier is used when Telegram is not configured.
type NoopNotifier struct{}

func (NoopNotifier) Send(_ context.Context, text string) error {
	log.Printf("[INFO] telegram disabled, dropping %d-byte message", len(text))
	return nil
}

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, proxyURL string) (*TelegramNotifier, error) {
	return NewTelegramNotifierWithEndpoint(botToken, chatID, proxyURL, tgbotapi.APIEndpoint)
}

// NewTelegramNotifierWithEndpoint is NewTelegramNotifier against a custom
// Bot API endpoint, formatted like tgbotapi.APIEndpoint.
func NewTelegramNotifierWithEndpoint(botToken, chatID, proxyURL, endpoint string) (*TelegramNotifier, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse chat id %q: %w", chatID, err)
	}

	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	client := &http.Client{
		Timeout:   40 * time.Second,
		Transport: transport,
	}

	bot, err := tgbotapi.NewBotAPIWithClient(botToken, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	log.Printf("[INFO] telegram bot authorized: %s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, chatID: id}, nil
}

// Send sends an HTML message to the configured chat.
func (t *TelegramNotifier) Send(_ context.Context, text string) error {
	return t.sendTo(t.chatID, text)
}

func (t *TelegramNotifier) sendTo(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func SendWithRetry(ctx context.Context, n Notifier, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := n.Send(ctx, text); err != nil {
			lastErr = err
			if i == maxRetries {
				break
			}
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] telegram send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
