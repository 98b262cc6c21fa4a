package mail

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// Mailer delivers transactional mail. The rest of the application treats
// delivery as an external collaborator and never inspects the outcome
// beyond the returned error.
type Mailer interface {
	SendPasswordReset(to, resetLink string) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a Mailer backed by the given SMTP relay.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendPasswordReset emails a reset link to the recipient.
func (m *SMTPMailer) SendPasswordReset(to, resetLink string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "TaskY password reset")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>You requested a password reset for your TaskY account.</p>
<p><a href="%s">Click here to choose a new password.</a></p>
<p>The link expires in one hour. If you did not request this, ignore this email.</p>`,
		resetLink,
	))
	return m.dialer.DialAndSend(msg)
}

// LogMailer writes mail to the log instead of sending it. Used when no SMTP
// relay is configured (local development).
type LogMailer struct{}

// SendPasswordReset logs the reset link.
func (LogMailer) SendPasswordReset(to, resetLink string) error {
	log.Info().Str("to", to).Str("link", resetLink).Msg("Password reset mail (not sent, SMTP unconfigured)")
	return nil
}
