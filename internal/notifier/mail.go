package notifier

import (
	"context"
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// MailNotifier emails each notice to the camp office inbox.
type MailNotifier struct {
	dialer mailSender
	from   string
	to     string
}

func NewMailNotifier(cfg MailConfig) (*MailNotifier, error) {
	if cfg.Host == "" || cfg.To == "" {
		return nil, fmt.Errorf("smtp host and recipient are required")
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &MailNotifier{dialer: dialer, from: from, to: cfg.To}, nil
}

func (n *MailNotifier) Name() string {
	return "email"
}

func (n *MailNotifier) NotifyBooking(ctx context.Context, notice BookingNotice) error {
	return n.send(ctx, notice.Subject(), notice.Text())
}

func (n *MailNotifier) NotifyContact(ctx context.Context, notice ContactNotice) error {
	return n.send(ctx, notice.Subject(), notice.Text())
}

func (n *MailNotifier) send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
