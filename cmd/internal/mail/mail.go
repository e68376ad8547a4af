// Package mail delivers contact-form messages to the site owner.
//
// Delivery is a black-box notification sink for the rest of the server: a
// failed send is reported to the caller and logged, never fatal.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Message is a contact-form submission.
type Message struct {
	FullName string
	Email    string
	Body     string
}

// Sender delivers contact messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NoopSender is the default when SMTP is not configured.
type NoopSender struct{}

// Send is a no-op implementation.
func (NoopSender) Send(_ context.Context, _ Message) error { return nil }

// Config holds SMTP delivery settings.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	Recipient string
}

// Enabled reports whether the config is complete enough to deliver.
func (c Config) Enabled() bool {
	return c.Host != "" && c.From != "" && c.Recipient != ""
}

// SMTPSender delivers via authenticated SMTP with mandatory STARTTLS.
type SMTPSender struct {
	cfg Config
}

// NewSMTPSender constructs an SMTP-backed sender.
func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send builds and delivers the notification mail.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := m.To(s.cfg.Recipient); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	m.Subject("New Contact from " + msg.FullName)
	m.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"You have a new message from your portfolio:\n\nName: %s\nEmail: %s\n\nMessage:\n%s",
		msg.FullName, msg.Email, msg.Body,
	))

	client, err := gomail.NewClient(s.cfg.Host,
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.Username),
		gomail.WithPassword(s.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("mail client: %w", err)
	}

	return client.DialAndSendWithContext(ctx, m)
}
