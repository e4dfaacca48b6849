package mail

import "gopkg.in/gomail.v2"

// SetSendFunc reemplaza el envío real (tests).
func (s *SMTPMailer) SetSendFunc(fn func(d *gomail.Dialer, m ...*gomail.Message) error) {
	s.send = fn
}
