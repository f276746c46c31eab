package email

import (
	"fmt"
	"html"

	gomail "gopkg.in/gomail.v2"

	"github.com/peoplehub/recognition-system/internal/core/ports"
)

// Config captures SMTP transport settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers notification emails over SMTP with a plain-text part
// and a styled HTML alternative.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(email ports.Email) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	if email.ToName != "" {
		msg.SetAddressHeader("To", email.To, email.ToName)
	} else {
		msg.SetHeader("To", email.To)
	}
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/plain", email.Body)
	msg.AddAlternative("text/html", renderHTML(email.Subject, email.Body))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email to %s: %w", email.To, err)
	}
	return nil
}

func renderHTML(title, message string) string {
	return fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; padding: 20px; border: 1px solid #eee;">
        <h2 style="color: #2d3436;">%s</h2>
        <p>%s</p>
        <br>
        <hr size="1" color="#eee">
        <p style="font-size: 12px; color: #636e72;">This is an automated system message. Please do not reply.</p>
    </div>
    `, html.EscapeString(title), html.EscapeString(message))
}
