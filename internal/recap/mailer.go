package recap

import (
	"fmt"
	"log/slog"

	"github.com/claude/repscope/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer delivers recap emails.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends plain-text mail over SMTP. An unconfigured transport
// (missing host or from address) makes every send a silent no-op; the skip is
// logged at debug level so it stays observable.
type SMTPMailer struct {
	cfg config.SMTPConfig
	log *slog.Logger
}

// NewSMTPMailer creates a mailer from SMTP config.
func NewSMTPMailer(cfg config.SMTPConfig, log *slog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log}
}

// Send delivers one message, or no-ops when mail is not configured.
func (m *SMTPMailer) Send(to, subject, body string) error {
	if m.cfg.Host == "" || m.cfg.From == "" {
		m.log.Debug("mail not configured, skipping send", "to", to, "subject", subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}
