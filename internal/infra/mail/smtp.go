package mail

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

// SMTPSender is the SMTP alternative to the REST client, for setups that
// route through a relay instead of the provider API.
type SMTPSender struct {
	host string
	port int
	user string
	pass string
	from Recipient
}

func NewSMTPSender(host string, port int, user, pass string, from Recipient) (*SMTPSender, error) {
	if host == "" {
		return nil, errors.New("smtp: host is required")
	}
	if from.Email == "" {
		return nil, errors.New("smtp: sender email is required")
	}
	return &SMTPSender{host: host, port: port, user: user, pass: pass, from: from}, nil
}

func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return errors.New("smtp: message has no recipients")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from.Email, s.from.Name)

	to := make([]string, len(msg.To))
	for i, r := range msg.To {
		to[i] = m.FormatAddress(r.Email, r.Name)
	}
	m.SetHeader("To", to...)
	m.SetHeader("Subject", msg.Subject)
	if msg.ReplyTo != nil {
		m.SetAddressHeader("Reply-To", msg.ReplyTo.Email, msg.ReplyTo.Name)
	}
	m.SetBody("text/html", msg.HTML)

	for _, att := range msg.Attachments {
		content := att.Content
		m.Attach(att.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: send failed: %w", err)
	}

	return nil
}
