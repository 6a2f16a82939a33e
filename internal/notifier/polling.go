package notifier

import (
	"context"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CommandHandler is called when a user command is received.
type CommandHandler func(command string) string

// StartPolling begins long-polling for Telegram commands and answers those
// sent from the configured chat. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			log.Println("[INFO] telegram polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			t.handleUpdate(update, handler)
		}
	}
}

// handleUpdate runs handler for a command from the configured chat and sends
// its reply. Commands from any other chat are dropped.
func (t *TelegramNotifier) handleUpdate(update tgbotapi.Update, handler CommandHandler) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() || msg.Chat == nil {
		return
	}
	if msg.Chat.ID != t.chatID {
		log.Printf("[WARN] ignoring command from chat %d", msg.Chat.ID)
		return
	}
	text := strings.TrimSpace(msg.Text)
	log.Printf("[INFO] received command: %s", text)
	reply := handler(text)
	if reply == "" {
		return
	}
	if err := t.sendTo(t.chatID, reply); err != nil {
		log.Printf("[ERROR] send reply: %v", err)
	}
}
