package mail

import (
	"context"
	"fmt"

	"github.com/collegeabroad/backend/internal/config"
	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"
)

// Mailer sends transactional email over SMTP.
type Mailer struct {
	client *gomail.Client
	from   string
	log    zerolog.Logger
}

// NewMailer creates a Mailer from SMTP configuration. The underlying client
// opens a connection per send; no long-lived pool is kept.
func NewMailer(cfg *config.Config, log zerolog.Logger) (*Mailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTPUser),
			gomail.WithPassword(cfg.SMTPPass),
		)
	}

	client, err := gomail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Mailer{
		client: client,
		from:   cfg.MailFrom,
		log:    log.With().Str("component", "mailer").Logger(),
	}, nil
}

// Send delivers a single HTML message to one recipient.
func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		m.log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("mail delivery failed")
		return fmt.Errorf("send mail: %w", err)
	}

	m.log.Debug().Str("to", to).Str("subject", subject).Msg("mail sent")
	return nil
}
