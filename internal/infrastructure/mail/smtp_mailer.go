// Package mail envía correos por SMTP con gomail usando la configuración guardada en Parámetros.
package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

var _ ports.Mailer = (*SMTPMailer)(nil)

// portSMTPS puerto SMTP con TLS implícito.
const portSMTPS = 465

// sendFunc abstrae gomail.Dialer.DialAndSend (tests).
type sendFunc func(d *gomail.Dialer, m ...*gomail.Message) error

// SMTPMailer implementa ports.Mailer.
type SMTPMailer struct {
	fallback config.SMTPConfig
	log      *logger.Logger
	send     sendFunc
}

// NewSMTPMailer construye el mailer. fallback aporta la contraseña cuando la guardada está vacía
// y fuerza TLS implícito con Secure.
func NewSMTPMailer(fallback config.SMTPConfig, log *logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		fallback: fallback,
		log:      log.Component("mail"),
		send:     func(d *gomail.Dialer, m ...*gomail.Message) error { return d.DialAndSend(m...) },
	}
}

// Send arma el mensaje y lo entrega. gomail no acepta context: si ctx se cancela antes
// de terminar se devuelve ctx.Err() y el envío sigue en segundo plano.
func (s *SMTPMailer) Send(ctx context.Context, cfg entity.MailConfig, msg ports.MailMessage) error {
	if !cfg.Complete() {
		return domain.ErrMailNotConfigured
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("%w: sin destinatarios", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d := s.dialer(cfg)
	m := buildMessage(cfg.SMTPUser, msg)

	done := make(chan error, 1)
	go func() { done <- s.send(d, m) }()

	select {
	case err := <-done:
		if err != nil {
			s.log.Error().Err(err).Str("host", cfg.SMTPHost).Int("port", cfg.SMTPPort).Msg("envío SMTP fallido")
			return fmt.Errorf("smtp: %w", err)
		}
		s.log.Info().Int("recipients", len(msg.To)).Str("subject", msg.Subject).Msg("correo enviado")
		return nil
	case <-ctx.Done():
		return errors.Join(ctx.Err(), errors.New("smtp: envío no confirmado"))
	}
}

func (s *SMTPMailer) dialer(cfg entity.MailConfig) *gomail.Dialer {
	pass := cfg.SMTPPass
	if pass == "" {
		pass = s.fallback.Password
	}
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, pass)
	d.SSL = cfg.SMTPPort == portSMTPS || s.fallback.Secure
	d.TLSConfig = &tls.Config{ServerName: cfg.SMTPHost, MinVersion: tls.VersionTLS12}
	return d
}

// buildMessage cuerpo de texto con alternativa HTML y adjuntos en memoria.
func buildMessage(from string, msg ports.MailMessage) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)

	switch {
	case msg.TextBody != "" && msg.HTMLBody != "":
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBody("text/html", msg.HTMLBody)
	default:
		m.SetBody("text/plain", msg.TextBody)
	}

	for _, a := range msg.Attachments {
		data := a.Data
		m.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.Mime}}),
		)
	}
	return m
}
