package dto

import "time"

// NamedRequest alta de categorías, marcas, proveedores y emplacements.
type NamedRequest struct {
	Name string `json:"name" validate:"required"`
}

// ModelRequest alta de un modelo.
type ModelRequest struct {
	Name       string `json:"name" validate:"required"`
	BrandID    string `json:"brand_id" validate:"required,uuid"`
	CategoryID string `json:"category_id" validate:"required,uuid"`
}

// PartnerRequest alta de un partner.
type PartnerRequest struct {
	Name        string  `json:"name" validate:"required"`
	ContactName string  `json:"contact_name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Phone1      string  `json:"phone1" validate:"required"`
	Phone2      *string `json:"phone2"`
}

// ProjectRequest alta de un proyecto.
type ProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	PartnerID   string `json:"partner_id" validate:"required,uuid"`
	Description string `json:"description"`
}

// SettingsResponse todas las tablas de Parámetros en una sola respuesta.
type SettingsResponse struct {
	Categories any                 `json:"categories"`
	Brands     any                 `json:"brands"`
	Models     any                 `json:"models"`
	Suppliers  any                 `json:"suppliers"`
	Locations  any                 `json:"locations"`
	Partners   any                 `json:"partners"`
	Projects   any                 `json:"projects"`
	Users      []UserResponse      `json:"users"`
	MailConfig *MailConfigResponse `json:"mail_config"`
}

// MailConfigRequest body de POST /api/settings/mail.
// SMTPPass vacío conserva la contraseña guardada.
type MailConfigRequest struct {
	SMTPHost           string   `json:"smtp_host"`
	SMTPPort           int      `json:"smtp_port" validate:"required,min=1,max=65535"`
	SMTPUser           string   `json:"smtp_user"`
	SMTPPass           string   `json:"smtp_pass" validate:"omitempty,min=8"`
	NotificationEmails []string `json:"notification_emails" validate:"max=20,dive,email"`
}

// MailConfigResponse configuración SMTP sin la contraseña.
type MailConfigResponse struct {
	ID                 string    `json:"id"`
	SMTPHost           string    `json:"smtp_host"`
	SMTPPort           int       `json:"smtp_port"`
	SMTPUser           string    `json:"smtp_user"`
	HasPassword        bool      `json:"has_password"`
	NotificationEmails []string  `json:"notification_emails"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TestMailRequest body de POST /api/settings/mail/test.
type TestMailRequest struct {
	Recipient string `json:"recipient" validate:"required,email"`
}
