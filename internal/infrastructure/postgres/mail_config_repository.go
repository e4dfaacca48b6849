package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.MailConfigRepository = (*MailConfigRepo)(nil)

// MailConfigRepo registro único de configuración SMTP (tabla mail_config).
type MailConfigRepo struct {
	q Querier
}

// NewMailConfigRepository construye el repositorio.
func NewMailConfigRepository(q Querier) *MailConfigRepo {
	return &MailConfigRepo{q: q}
}

// Get devuelve la configuración más reciente o nil.
func (r *MailConfigRepo) Get(ctx context.Context) (*entity.MailConfig, error) {
	var c entity.MailConfig
	err := r.q.QueryRow(ctx, `
		SELECT id, smtp_host, smtp_port, smtp_user, smtp_pass, notification_emails, created_at, updated_at
		FROM mail_config ORDER BY updated_at DESC LIMIT 1`,
	).Scan(&c.ID, &c.SMTPHost, &c.SMTPPort, &c.SMTPUser, &c.SMTPPass, &c.NotificationEmails, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mail config: %w", err)
	}
	return &c, nil
}

// Save hace upsert por id. Con smtp_pass vacío se conserva la contraseña guardada.
func (r *MailConfigRepo) Save(ctx context.Context, c *entity.MailConfig) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO mail_config (id, smtp_host, smtp_port, smtp_user, smtp_pass, notification_emails, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			smtp_host = EXCLUDED.smtp_host,
			smtp_port = EXCLUDED.smtp_port,
			smtp_user = EXCLUDED.smtp_user,
			smtp_pass = CASE WHEN EXCLUDED.smtp_pass = '' THEN mail_config.smtp_pass ELSE EXCLUDED.smtp_pass END,
			notification_emails = EXCLUDED.notification_emails,
			updated_at = EXCLUDED.updated_at`,
		c.ID, c.SMTPHost, c.SMTPPort, c.SMTPUser, c.SMTPPass, nonNil(c.NotificationEmails), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save mail config: %w", err)
	}
	return nil
}
