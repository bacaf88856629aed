package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Notifier defines the interface for a Telegram notifier.
type Notifier interface {
	SendMessage(text string) error
	SendMessages(parts []string) error
}

// client is an implementation of Notifier.
type client struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	limiter *rate.Limiter
}

// NewClient creates a new Telegram notifier client. Messages to the chat are paced at one per second.
func NewClient(botToken string, chatID int64) (Notifier, error) {
	if botToken == "" || chatID == 0 {
		return nil, errors.New("telegram bot token and chat id are required")
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &client{
		bot:     bot,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}, nil
}

// SendMessage sends a Markdown message, retrying once as plain text when Telegram rejects the markup.
func (c *client) SendMessage(text string) error {
	if err := c.limiter.Wait(context.Background()); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := c.bot.Send(msg); err != nil {
		msg.ParseMode = ""
		if _, plainErr := c.bot.Send(msg); plainErr != nil {
			return fmt.Errorf("failed to send telegram message: %w", err)
		}
	}
	return nil
}

func (c *client) SendMessages(parts []string) error {
	return sendAll(c, parts)
}

type nopNotifier struct{}

// NewNopNotifier returns a Notifier that drops every message, used when Telegram is disabled.
func NewNopNotifier() Notifier {
	return nopNotifier{}
}

func (nopNotifier) SendMessage(string) error {
	return nil
}

func (nopNotifier) SendMessages([]string) error {
	return nil
}

// sendAll sends parts in order and stops at the first failure.
func sendAll(n interface{ SendMessage(string) error }, parts []string) error {
	for i, part := range parts {
		if err := n.SendMessage(part); err != nil {
			return fmt.Errorf("part %d/%d: %w", i+1, len(parts), err)
		}
	}
	return nil
}
