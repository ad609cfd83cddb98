package recap

import (
	"io"
	"log/slog"
	"testing"

	"github.com/claude/repscope/internal/config"
)

// TestSMTPMailer_UnconfiguredIsNoOp verifies the reference behavior: with no
// SMTP host or from address, Send succeeds without attempting delivery.
func TestSMTPMailer_UnconfiguredIsNoOp(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	cases := []config.SMTPConfig{
		{},
		{Host: "smtp.example.com", Port: 587},   // missing from
		{From: "recaps@example.com", Port: 587}, // missing host
	}
	for _, cfg := range cases {
		m := NewSMTPMailer(cfg, log)
		if err := m.Send("user@example.com", "subject", "body"); err != nil {
			t.Errorf("Send with config %+v: unexpected error %v", cfg, err)
		}
	}
}
