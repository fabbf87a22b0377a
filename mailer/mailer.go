package mailer

import gomail "gopkg.in/gomail.v2"

// Sender delivers one email. Failures are the caller's problem to surface or
// swallow; this package never retries.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// SMTP sends through a plain SMTP account.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(host string, port int, user, pass, from string) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (s *SMTP) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}
