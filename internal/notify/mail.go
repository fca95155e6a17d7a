package notify

import (
	"cmp"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"jobwatch/internal/config"
)

// Notifier delivers one rendered digest.
type Notifier interface {
	Notify(ctx context.Context, subject, htmlBody string) error
}

// Mailer sends the digest over SMTP with STARTTLS. Transport settings come
// from the environment; addressing comes from the operator config, with the
// sender falling back to the SMTP user and then the recipient.
type Mailer struct {
	settings config.Settings
	to       string
	from     string
}

func NewMailer(settings config.Settings, cfg *config.Config) *Mailer {
	return &Mailer{
		settings: settings,
		to:       cfg.NotifyEmail,
		from:     cmp.Or(cfg.FromEmail, settings.SMTPUser, cfg.NotifyEmail),
	}
}

func (m *Mailer) Notify(ctx context.Context, subject, htmlBody string) error {
	opts := []mail.Option{
		mail.WithPort(m.settings.SMTPPort),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if m.settings.SMTPUser != "" && m.settings.SMTPPass != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.settings.SMTPUser),
			mail.WithPassword(m.settings.SMTPPass),
		)
	}

	client, err := mail.NewClient(m.settings.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("sender %q: %w", m.from, err)
	}
	if err := msg.To(m.to); err != nil {
		return fmt.Errorf("recipient %q: %w", m.to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
