package email

import (
	"context"

	"github.com/orderdesk/emailer/internal/logger"
)

// LogSender is a Sender that logs messages instead of sending them.
// Not for production use: it logs recipient addresses and message contents.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender creates a new LogSender.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log.WithComponent("log_sender")}
}

// Send logs the message.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Info().
		Str("tenant_id", msg.TenantID).
		Str("from", msg.From).
		Str("to", msg.To).
		Str("cc", msg.CC).
		Str("subject", msg.Subject).
		Int("attachments", len(msg.Attachments)).
		Msg("send email")
	return nil
}
