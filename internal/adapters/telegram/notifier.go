package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Ilyass-shw/apartment-bot/internal/constants"
	"github.com/Ilyass-shw/apartment-bot/internal/contextkeys"
	"github.com/Ilyass-shw/apartment-bot/internal/core/domain"
	"github.com/Ilyass-shw/apartment-bot/internal/core/port"
)

const defaultAPIBaseURL = "https://api.telegram.org"

// Notifier отправляет уведомления о новых объявлениях в один настроенный
// Telegram-чат через sendMessage. Ошибка доставки возвращается вызывающему,
// но dispatcher её только логирует: неудавшееся уведомление не должно
// блокировать пометку объявления как виденного.
type Notifier struct {
	apiBaseURL string
	botToken   string
	chatID     string
	httpClient *http.Client
}

func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		apiBaseURL: defaultAPIBaseURL,
		botToken:   botToken,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: constants.RequestTimeout},
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Notify форматирует сообщение по шаблону источника и отправляет его в чат.
func (n *Notifier) Notify(ctx context.Context, listing domain.ListingRecord) error {
	logger := contextkeys.LoggerFromContext(ctx)
	notifyLogger := logger.WithFields(port.Fields{
		"component":  "TelegramNotifier",
		"source":     listing.SourceTag,
		"listing_id": listing.ID,
	})

	payload := sendMessageRequest{
		ChatID:                n.chatID,
		Text:                  BuildMessage(listing),
		ParseMode:             "Markdown",
		DisableWebPagePreview: false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram notifier: failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBaseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram notifier: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		notifyLogger.Error("Failed to send notification", err, nil)
		return fmt.Errorf("telegram notifier: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("telegram API returned non-success status code %d: %s", resp.StatusCode, string(respBody))
		notifyLogger.Error("Received error response from telegram API", err, port.Fields{"status_code": resp.StatusCode})
		return err
	}

	notifyLogger.Info("Notification sent", nil)
	return nil
}
