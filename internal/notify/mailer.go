package notify

import (
	"fmt"
	"net/smtp"

	"gasline/internal/config"
)

// Mailer sends the portal welcome email. It is only ever called from the
// fire-and-forget provisioning path; delivery failures are the caller's to
// log and swallow.
type Mailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewMailer(cfg config.PortalConfig) *Mailer {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return &Mailer{
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		auth: auth,
		from: cfg.From,
	}
}

func (m *Mailer) SendWelcome(to, name, accessLink string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your account is ready\r\n\r\n"+
			"Hello %s,\r\n\r\n"+
			"Your order was placed and a customer portal account was created for you.\r\n"+
			"Access it here: %s\r\n",
		m.from, to, name, accessLink,
	)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending welcome email: %w", err)
	}
	return nil
}
