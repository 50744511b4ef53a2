// Package mailer provides the outbound SMTP transport
package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sreepuli/AquaAlert-sub000/internal/domain/mail"
	apperrors "github.com/sreepuli/AquaAlert-sub000/internal/pkg/errors"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
)

// Config contains SMTP transport settings
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// SMTPMailer sends messages through a plain SMTP relay. Authentication
// is used only when a username is configured.
type SMTPMailer struct {
	cfg    Config
	logger *logger.Logger
}

func NewSMTPMailer(cfg Config, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: log}
}

// Send delivers the message to all To and CC recipients in one SMTP
// transaction
func (m *SMTPMailer) Send(ctx context.Context, msg *mail.Message) (*mail.SendResult, error) {
	if len(msg.To) == 0 {
		return nil, apperrors.BadRequest("message has no recipients")
	}

	recipients := append(append([]string{}, msg.To...), msg.CC...)
	messageID := uuid.New().String()
	addr := net.JoinHostPort(m.cfg.Host, fmt.Sprintf("%d", m.cfg.Port))

	done := make(chan error, 1)
	go func() {
		done <- m.transmit(addr, msg, recipients, messageID)
	}()

	timeout := m.cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, apperrors.MailerError(ctx.Err())
	case <-timer.C:
		return nil, apperrors.MailerError(fmt.Errorf("smtp send timed out after %s", timeout))
	case err := <-done:
		if err != nil {
			m.logger.ErrorWithErr(err, "SMTP delivery failed")
			return nil, apperrors.MailerError(err)
		}
	}

	m.logger.Debugf("SMTP delivery ok: message=%s recipients=%d", messageID, len(recipients))
	return &mail.SendResult{MessageID: messageID, Recipients: recipients}, nil
}

func (m *SMTPMailer) transmit(addr string, msg *mail.Message, recipients []string, messageID string) error {
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	return smtp.SendMail(addr, auth, msg.From, recipients, buildMIME(msg, messageID))
}

// buildMIME assembles the RFC 5322 message with headers and body
func buildMIME(msg *mail.Message, messageID string) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "Message-ID: <%s@aquaalert>\r\n", messageID)
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	if len(msg.CC) > 0 {
		fmt.Fprintf(&b, "Cc: %s\r\n", strings.Join(msg.CC, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	if msg.Priority == mail.PriorityHigh {
		b.WriteString("X-Priority: 1\r\n")
		b.WriteString("Importance: high\r\n")
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	if msg.HTML {
		b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	} else {
		b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")

	return []byte(b.String())
}
