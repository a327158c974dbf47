package services

import (
	"fmt"
	"strings"

	"championsite-backend-go/internal/config"

	"github.com/wneessen/go-mail"
)

// Mailer relays prayer requests to the configured recipient. Requests are
// never persisted; email is the only channel, matching the deployment's
// privacy stance.
type Mailer struct {
	cfg config.Config
}

func NewMailer(cfg config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether SMTP settings are present. When false, the handler
// answers 501 instead of attempting a send.
func (m *Mailer) Enabled() bool {
	return m.cfg.MailConfigured()
}

func (m *Mailer) SendPrayerRequest(name, email, message string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.SMTPFrom); err != nil {
		return WrapError(err, "mail from")
	}
	if err := msg.To(m.cfg.PrayerRecipient); err != nil {
		return WrapError(err, "mail to")
	}
	if err := msg.ReplyTo(email); err != nil {
		return WrapError(err, "mail reply-to")
	}
	msg.Subject(fmt.Sprintf("Prayer request from %s", name))
	body := strings.Join([]string{
		"Name: " + name,
		"Email: " + email,
		"",
		message,
	}, "\n")
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if m.cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.SMTPUser),
			mail.WithPassword(m.cfg.SMTPPassword),
		)
	}
	client, err := mail.NewClient(m.cfg.SMTPHost, opts...)
	if err != nil {
		return WrapError(err, "mail client")
	}
	return client.DialAndSend(msg)
}
