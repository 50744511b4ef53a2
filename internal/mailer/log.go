package mailer

import (
	"context"

	"github.com/google/uuid"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/mail"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
)

// LogMailer writes messages to the log instead of a relay. Used in
// development when no SMTP host is configured.
type LogMailer struct {
	logger *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{logger: log}
}

// Send logs the message and reports success
func (m *LogMailer) Send(_ context.Context, msg *mail.Message) (*mail.SendResult, error) {
	recipients := append(append([]string{}, msg.To...), msg.CC...)
	id := uuid.New().String()
	m.logger.Infof("Email (log transport): id=%s subject=%q to=%v cc=%v", id, msg.Subject, msg.To, msg.CC)
	return &mail.SendResult{MessageID: id, Recipients: recipients}, nil
}
