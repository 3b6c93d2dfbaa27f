package infra

import (
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"garagedesk/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends invoice mail over plain-auth SMTP. Sends happen only from the
// email worker, behind its circuit breaker.
type Mailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		addr: net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)),
		auth: smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost),
		from: cfg.SMTPUser,
	}
}

// SendInvoice mails the customer, attaching the invoice PDF when a path is
// given.
func (m *Mailer) SendInvoice(to, subject, body, pdfPath string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}
	return e.Send(m.addr, m.auth)
}
