// Package mailer delivers newsletter mail through SendGrid.
package mailer

import (
	"context"
	"fmt"
	"html"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/Saai-Jaswant/God-Pill-Project-X/internal/config"
)

const welcomeSubject = "Welcome to the God Pill newsletter"

// Mailer sends transactional mail.
type Mailer interface {
	SendWelcome(ctx context.Context, email string, name *string) error
}

// New returns a SendGrid mailer, or a no-op mailer when no API key is configured.
func New(cfg config.MailConfig, log *zap.Logger) Mailer {
	if cfg.SendGridAPIKey == "" {
		log.Info("newsletter mail disabled: SENDGRID_API_KEY not set")
		return Noop{}
	}
	return newSendGrid(sendgrid.NewSendClient(cfg.SendGridAPIKey), cfg, log)
}

func newSendGrid(client *sendgrid.Client, cfg config.MailConfig, log *zap.Logger) *SendGrid {
	return &SendGrid{
		client: client,
		from:   mail.NewEmail(cfg.FromName, cfg.FromEmail),
		log:    log,
	}
}

// SendGrid sends mail through the SendGrid v3 API.
type SendGrid struct {
	client *sendgrid.Client
	from   *mail.Email
	log    *zap.Logger
}

// SendWelcome sends the welcome message to a new or returning subscriber.
func (s *SendGrid) SendWelcome(ctx context.Context, email string, name *string) error {
	greeting := "there"
	toName := ""
	if name != nil && *name != "" {
		greeting = *name
		toName = *name
	}

	message := mail.NewSingleEmail(s.from, welcomeSubject, mail.NewEmail(toName, email),
		welcomeText(greeting), welcomeHTML(greeting))

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send welcome mail: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("send welcome mail: sendgrid returned %d", resp.StatusCode)
	}

	s.log.Debug("welcome mail sent", zap.String("email", email), zap.Int("status", resp.StatusCode))
	return nil
}

func welcomeText(greeting string) string {
	return fmt.Sprintf("Hi %s,\n\nThanks for subscribing to product and review updates.\n"+
		"You can unsubscribe at any time.", greeting)
}

func welcomeHTML(greeting string) string {
	return fmt.Sprintf("<p>Hi %s,</p><p>Thanks for subscribing to product and review updates.</p>"+
		"<p>You can unsubscribe at any time.</p>", html.EscapeString(greeting))
}

// Noop drops every message.
type Noop struct{}

// SendWelcome does nothing.
func (Noop) SendWelcome(context.Context, string, *string) error {
	return nil
}
