package mailer

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// SMTPProvider is the development/local fallback Provider, selected with
// EMAIL_PROVIDER=smtp. Same contract as Brevo, no message id.
type SMTPProvider struct {
	host     string
	addr     string
	user     string
	password string
	sender   string
}

func NewSMTPProvider(host string, port int, user, password, sender string) *SMTPProvider {
	return &SMTPProvider{
		host:     host,
		addr:     fmt.Sprintf("%s:%d", host, port),
		user:     user,
		password: password,
		sender:   sender,
	}
}

// Send delivers the message over plain SMTP with the PDF attached.
func (m *SMTPProvider) Send(_ context.Context, msg Message) (*Result, error) {
	e := email.NewEmail()
	e.From = m.sender
	e.To = []string{msg.ToEmail}
	e.Subject = msg.Subject
	e.HTML = []byte(msg.HTML)

	if len(msg.Attachment) > 0 {
		if _, err := e.Attach(bytes.NewReader(msg.Attachment), msg.AttachmentName, "application/pdf"); err != nil {
			return nil, fmt.Errorf("smtp: attach pdf: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	if err := e.Send(m.addr, auth); err != nil {
		return nil, fmt.Errorf("smtp: send: %w", err)
	}
	return &Result{}, nil
}
