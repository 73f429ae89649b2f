package notify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ahmedmubarak14/poconfirm/internal/config"
)

// Module provides the notification sender: webhook-backed when an endpoint
// is configured, log-backed otherwise.
var Module = fx.Options(
	fx.Provide(newSender),
)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	if p.Config.NotifyWebhookURL == "" {
		return NewLogSender(p.Logger), nil
	}
	return NewWebhookSender(p.Config.NotifyWebhookURL, p.Logger)
}
