package mail

import (
	"context"

	"github.com/google/uuid"
	"github.com/xavierca1/ligue-outreach/internal/entity"
	"go.uber.org/zap"
)

// LogSender writes emails to the log instead of delivering them.
type LogSender struct {
	Logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{Logger: logger}
}

func (s *LogSender) Send(_ context.Context, email entity.OutboundEmail) entity.DeliveryResult {
	if email.ToEmail == "" {
		return entity.DeliveryFailed("recipient email is required")
	}
	id := "log-" + uuid.New().String()
	s.Logger.Info("email not delivered (log provider)",
		zap.String("message_id", id),
		zap.String("from", email.From()),
		zap.String("to", email.ToEmail),
		zap.String("subject", email.Subject),
		zap.Int("html_bytes", len(email.HTMLBody)),
	)
	return entity.DeliveryResult{Success: true, MessageID: id}
}
