package notifier

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/jonesrussell/gotender/internal/config"
	"github.com/jonesrussell/gotender/internal/logger"
)

// ErrNotConfigured is returned when SMTP settings are incomplete. Delivery
// then counts as failed; the run proceeds and records notified=false.
var ErrNotConfigured = errors.New("smtp transport not configured")

// SMTPSender delivers messages over SMTP with opportunistic STARTTLS.
type SMTPSender struct {
	cfg    config.SMTPConfig
	logger logger.Logger
}

func NewSMTPSender(cfg config.SMTPConfig, log logger.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: log}
}

// Send submits one message. The body is attached both as plain text and as a
// simple HTML alternative.
func (s *SMTPSender) Send(ctx context.Context, msg Message, recipients []string) error {
	if !s.cfg.Configured() {
		s.logger.Error("SMTP not configured; cannot send notification")
		return ErrNotConfigured
	}
	if len(recipients) == 0 {
		return errors.New("no recipients configured")
	}

	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("set from %q: %w", s.cfg.From, err)
	}
	if err := m.To(recipients...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	m.AddAlternativeString(mail.TypeTextHTML, htmlBody(msg.Body))

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.User),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	s.logger.Info("Notification sent",
		logger.String("subject", msg.Subject),
		logger.Strings("recipients", recipients),
	)
	return nil
}

func htmlBody(body string) string {
	escaped := html.EscapeString(body)
	return "<html><body>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</body></html>"
}
