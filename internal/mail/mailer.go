// Package mail sends transactional email over SMTP. Delivery is best
// effort: callers log failures and carry on, because no request flow
// depends on a mail actually arriving.
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/rapsplay/console-rental/internal/config"
)

// Mailer sends a single message. Handlers depend on this interface so
// tests can substitute a recorder.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers via a plain SMTP dialer.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.MailFrom,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	if m.host == "" {
		return fmt.Errorf("mail: no SMTP host configured")
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return d.DialAndSend(msg)
}

// LoginAlertBody renders the notification sent after each successful
// sign-in.
func LoginAlertBody(name string) string {
	return fmt.Sprintf("<p>Hi %s,</p><p>Your account just signed in to RapsPlay. If this wasn't you, reset your password right away.</p>", name)
}

// OTPBody renders the password reset mail carrying the one-time code.
func OTPBody(otp string, ttlMin int) string {
	return fmt.Sprintf("<p>Your RapsPlay password reset code is <b>%s</b>.</p><p>It expires in %d minutes. If you didn't request this, ignore this mail.</p>", otp, ttlMin)
}
