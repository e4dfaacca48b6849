package entity

import "time"

// MailConfig configuración SMTP (registro único) y destinatarios de notificaciones.
type MailConfig struct {
	ID                 string
	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPass           string
	NotificationEmails []string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Complete indica si hay datos suficientes para abrir una conexión SMTP.
func (c *MailConfig) Complete() bool {
	return c != nil && c.SMTPHost != "" && c.SMTPPort > 0 && c.SMTPUser != ""
}
