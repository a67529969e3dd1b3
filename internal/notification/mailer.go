package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blog-cms-api/internal/config"
	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// Message is a fully formed plain-text email
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

// Validate checks that the message can be handed to a transport
func (m Message) Validate() error {
	if len(m.To) == 0 {
		return errors.New("message has no recipients")
	}
	if strings.TrimSpace(m.Subject) == "" {
		return errors.New("message has no subject")
	}
	return nil
}

// Mailer delivers a message through some transport
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends mail through an SMTP relay
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (s *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := m.To(msg.To...); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("set reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(s.cfg.Timeout),
	}
	if s.cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.User),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// LogMailer only logs messages. Used when no SMTP relay is configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log.With().Str("component", "log_mailer").Logger()}
}

func (l *LogMailer) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	l.log.Info().
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Int("body_bytes", len(msg.Body)).
		Msg("Mail not sent, SMTP not configured")
	return nil
}

// NewMailer picks the SMTP transport when configured, else the log transport
func NewMailer(cfg config.SMTPConfig, log zerolog.Logger) Mailer {
	if cfg.MailEnabled() {
		return NewSMTPMailer(cfg)
	}
	return NewLogMailer(log)
}
