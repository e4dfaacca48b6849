package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/validation"
)

const maxNotificationEmails = 20

// MailUseCase configuración SMTP y correo de prueba.
type MailUseCase struct {
	repo   repository.MailConfigRepository
	mailer ports.Mailer
}

// NewMailUseCase construye el caso de uso.
func NewMailUseCase(repo repository.MailConfigRepository, mailer ports.Mailer) *MailUseCase {
	return &MailUseCase{repo: repo, mailer: mailer}
}

// Get devuelve la configuración sin contraseña; nil si aún no existe.
func (uc *MailUseCase) Get(ctx context.Context) (*dto.MailConfigResponse, error) {
	cfg, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromMailConfig(cfg), nil
}

// Save valida y guarda. Si SMTPPass viene vacío se conserva la contraseña actual.
// Los emails de notificación se pasan a minúsculas y se deduplican.
func (uc *MailUseCase) Save(ctx context.Context, in dto.MailConfigRequest) (*dto.MailConfigResponse, error) {
	emails := normalizeEmails(in.NotificationEmails)
	in.NotificationEmails = emails
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if len(emails) > maxNotificationEmails {
		return nil, domain.ErrInvalidInput
	}

	current, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	cfg := &entity.MailConfig{
		ID:                 uuid.New().String(),
		SMTPHost:           strings.TrimSpace(in.SMTPHost),
		SMTPPort:           in.SMTPPort,
		SMTPUser:           strings.TrimSpace(in.SMTPUser),
		SMTPPass:           in.SMTPPass,
		NotificationEmails: emails,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if current != nil {
		cfg.ID = current.ID
		cfg.CreatedAt = current.CreatedAt
	}
	if err := uc.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	if cfg.SMTPPass == "" && current != nil {
		cfg.SMTPPass = current.SMTPPass
	}
	return dto.FromMailConfig(cfg), nil
}

// SendTest envía un correo de prueba a recipient. ErrMailNotConfigured si la configuración está incompleta.
func (uc *MailUseCase) SendTest(ctx context.Context, in dto.TestMailRequest) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	cfg, err := uc.repo.Get(ctx)
	if err != nil {
		return err
	}
	if !cfg.Complete() {
		return domain.ErrMailNotConfigured
	}
	msg := ports.MailMessage{
		To:       []string{in.Recipient},
		Subject:  "StockFlow - e-mail de test",
		TextBody: fmt.Sprintf("Configuration SMTP OK (%s:%d).", cfg.SMTPHost, cfg.SMTPPort),
		HTMLBody: fmt.Sprintf("<p>Configuration SMTP OK (<b>%s:%d</b>).</p>", cfg.SMTPHost, cfg.SMTPPort),
	}
	if err := uc.mailer.Send(ctx, *cfg, msg); err != nil {
		return fmt.Errorf("mail: envío de prueba: %w", err)
	}
	return nil
}

func normalizeEmails(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
