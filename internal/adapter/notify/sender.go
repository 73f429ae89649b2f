package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ahmedmubarak14/poconfirm/internal/domain/model"
)

// Sender delivers a claimed outbox entry. Channel and content are outside
// the core's scope; senders only move the entry out of the service.
type Sender interface {
	Send(ctx context.Context, n model.Notification) error
}

// WebhookSender posts outbox entries as JSON to a configured endpoint.
type WebhookSender struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type webhookPayload struct {
	UserID  int64  `json:"user_id"`
	OrderID int64  `json:"order_id"`
	Kind    string `json:"kind"`
	Payload string `json:"payload,omitempty"`
}

// NewWebhookSender creates webhook sender with default timeout.
func NewWebhookSender(endpoint string, logger *slog.Logger) (*WebhookSender, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse webhook url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("webhook url must be absolute")
	}
	return &WebhookSender{
		endpoint: parsed,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send posts the notification to the webhook endpoint.
func (s *WebhookSender) Send(ctx context.Context, n model.Notification) error {
	body, err := json.Marshal(webhookPayload{
		UserID:  n.UserID,
		OrderID: n.OrderID,
		Kind:    string(n.Kind),
		Payload: n.Payload,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(resp.Body)
		s.logger.Error("webhook delivery failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(detail)),
		)
		return fmt.Errorf("webhook error: %s", resp.Status)
	}
	return nil
}

// LogSender writes outbox entries to the log. Used when no webhook endpoint
// is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the notification.
func (s *LogSender) Send(ctx context.Context, n model.Notification) error {
	s.logger.Info("notification",
		slog.Int64("user_id", n.UserID),
		slog.Int64("order_id", n.OrderID),
		slog.String("kind", string(n.Kind)),
	)
	return nil
}
