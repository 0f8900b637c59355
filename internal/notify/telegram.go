package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-telegram/bot"
)

const (
	telegramQueueSize   = 16
	telegramSendTimeout = 10 * time.Second
)

// Telegram sends operator notifications to a Telegram chat. Messages are
// queued and sent from a background goroutine; when the queue is full new
// messages are dropped, so a slow or unreachable Telegram API can never
// block the caller.
type Telegram struct {
	bot    *bot.Bot
	chatID int64
	queue  chan string
	done   chan struct{}
}

// NewTelegram creates a notifier for the given bot token and chat.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}

	t := &Telegram{
		bot:    b,
		chatID: chatID,
		queue:  make(chan string, telegramQueueSize),
		done:   make(chan struct{}),
	}
	go t.sender()
	return t, nil
}

// Eventf queues a notification. Never blocks; drops when the queue is full.
func (t *Telegram) Eventf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	select {
	case t.queue <- msg:
	default:
		log.Printf("notify: telegram queue full, dropping: %s", msg)
	}
}

// Close stops the sender goroutine. Queued messages are discarded.
func (t *Telegram) Close() {
	close(t.done)
}

func (t *Telegram) sender() {
	for {
		select {
		case <-t.done:
			return
		case msg := <-t.queue:
			ctx, cancel := context.WithTimeout(context.Background(), telegramSendTimeout)
			_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: t.chatID,
				Text:   msg,
			})
			cancel()
			if err != nil {
				log.Printf("notify: telegram send failed: %v", err)
			}
		}
	}
}
