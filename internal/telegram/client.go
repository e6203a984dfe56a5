package telegram

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"gopkg.in/telebot.v3"
)

var ErrMissingCredentials = errors.New("telegram bot token and chat id are required")

// Sender delivers reminder text to a single configured chat.
type Sender struct {
	bot    *telebot.Bot
	chatID int64
}

// NewSender builds a bot without polling; it only sends messages.
func NewSender(token string, chatID int64, apiURL string) (*Sender, error) {
	token = strings.TrimSpace(token)
	if token == "" || chatID == 0 {
		return nil, ErrMissingCredentials
	}

	bot, err := telebot.NewBot(telebot.Settings{
		URL:     apiURL,
		Token:   token,
		Offline: true,
		Client:  &http.Client{Timeout: 15 * time.Second},
	})
	if err != nil {
		return nil, err
	}
	return &Sender{bot: bot, chatID: chatID}, nil
}

func (sender *Sender) SendReminder(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := sender.bot.Send(telebot.ChatID(sender.chatID), text, &telebot.SendOptions{
		DisableWebPagePreview: true,
	})
	return err
}
