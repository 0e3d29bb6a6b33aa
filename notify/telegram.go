package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrMissingCredentials means the bot token or chat id is not configured.
var ErrMissingCredentials = errors.New("notify: telegram token and chat id are required")

// Dispatcher delivers one pre-formatted report.
type Dispatcher interface {
	Send(ctx context.Context, text string) error
}

// Telegram sends messages through the Bot API sendMessage method.
type Telegram struct {
	client *resty.Client
	token  string
	chatID string
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// NewTelegram creates a Telegram dispatcher against apiURL
// (normally https://api.telegram.org).
func NewTelegram(apiURL, token, chatID string) (*Telegram, error) {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(chatID) == "" {
		return nil, ErrMissingCredentials
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(apiURL, "/")).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Telegram{client: client, token: token, chatID: chatID}, nil
}

// Send implements Dispatcher.
func (t *Telegram) Send(ctx context.Context, text string) error {
	var out apiResponse
	res, err := t.client.R().
		SetContext(ctx).
		SetBody(sendMessageRequest{ChatID: t.chatID, Text: text}).
		SetResult(&out).
		SetError(&out).
		Post("/bot" + t.token + "/sendMessage")
	if err != nil {
		return fmt.Errorf("notify: send message: %w", redact(err, t.token))
	}
	if res.IsError() || !out.OK {
		desc := out.Description
		if desc == "" {
			desc = res.Status()
		}
		return fmt.Errorf("notify: telegram rejected message (status %d): %s", res.StatusCode(), desc)
	}
	return nil
}

// redact keeps the bot token out of logged transport errors, which include the URL.
func redact(err error, token string) error {
	msg := err.Error()
	if token == "" || !strings.Contains(msg, token) {
		return err
	}
	return errors.New(strings.ReplaceAll(msg, token, "<token>"))
}
