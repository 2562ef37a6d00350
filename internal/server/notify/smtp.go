package notify

import (
	"context"
	"io"

	"gopkg.in/gomail.v2"
)

// SMTPConfig addresses and authenticates against the outgoing mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPTransport sends messages through an SMTP server. Every Send opens its
// own connection; there is no timeout beyond the server's own.
type SMTPTransport struct {
	dialer dialer
}

func NewSMTPTransport(cfg SMTPConfig) *SMTPTransport {
	return &SMTPTransport{dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)}
}

func (t *SMTPTransport) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.dialer.DialAndSend(buildMessage(msg))
}

func buildMessage(msg *Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", msg.From.Email, msg.From.Name)
	m.SetHeader("To", msg.To...)
	if len(msg.Cc) > 0 {
		m.SetHeader("Cc", msg.Cc...)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	for _, a := range msg.Attachments {
		content := a.Content
		m.Attach(a.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}
	return m
}
