package ports

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// Attachment archivo adjunto a un correo.
type Attachment struct {
	Filename string
	Mime     string
	Data     []byte
}

// MailMessage correo a enviar.
type MailMessage struct {
	To          []string
	Subject     string
	HTMLBody    string
	TextBody    string
	Attachments []Attachment
}

// Mailer envía correos con la configuración SMTP guardada en Parámetros.
// La implementación concreta (SMTP) vive en infrastructure/mail.
type Mailer interface {
	Send(ctx context.Context, cfg entity.MailConfig, msg MailMessage) error
}
