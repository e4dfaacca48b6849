package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

func TestMailSave_NormalizaEmailsYConservaPassword(t *testing.T) {
	repo := &fakeMailConfig{}
	uc := usecase.NewMailUseCase(repo, &fakeMailer{})
	ctx := context.Background()

	out, err := uc.Save(ctx, dto.MailConfigRequest{
		SMTPHost:           "smtp.dcat.fr",
		SMTPPort:           587,
		SMTPUser:           "stock@dcat.fr",
		SMTPPass:           "supersecret",
		NotificationEmails: []string{" Chef@DCAT.fr", "chef@dcat.fr", "", "compta@dcat.fr"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"chef@dcat.fr", "compta@dcat.fr"}, out.NotificationEmails)
	assert.True(t, out.HasPassword)

	out, err = uc.Save(ctx, dto.MailConfigRequest{SMTPHost: "smtp2.dcat.fr", SMTPPort: 465, SMTPUser: "stock@dcat.fr"})
	require.NoError(t, err)
	assert.True(t, out.HasPassword)
	assert.Equal(t, "supersecret", repo.cfg.SMTPPass)
	assert.Equal(t, "smtp2.dcat.fr", repo.cfg.SMTPHost)
}

func TestMailSave_Validacion(t *testing.T) {
	uc := usecase.NewMailUseCase(&fakeMailConfig{}, &fakeMailer{})
	ctx := context.Background()

	_, err := uc.Save(ctx, dto.MailConfigRequest{SMTPHost: "h", SMTPPort: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "puerto positivo")

	_, err = uc.Save(ctx, dto.MailConfigRequest{SMTPHost: "h", SMTPPort: 25, SMTPPass: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "password mínimo 8")

	_, err = uc.Save(ctx, dto.MailConfigRequest{SMTPHost: "h", SMTPPort: 25, NotificationEmails: []string{"no-email"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMailSendTest(t *testing.T) {
	repo := &fakeMailConfig{}
	mailer := &fakeMailer{}
	uc := usecase.NewMailUseCase(repo, mailer)
	ctx := context.Background()

	err := uc.SendTest(ctx, dto.TestMailRequest{Recipient: "chef@dcat.fr"})
	assert.ErrorIs(t, err, domain.ErrMailNotConfigured)

	repo.cfg = &entity.MailConfig{SMTPHost: "smtp.dcat.fr", SMTPPort: 587, SMTPUser: "stock@dcat.fr", SMTPPass: "x"}
	require.NoError(t, uc.SendTest(ctx, dto.TestMailRequest{Recipient: "chef@dcat.fr"}))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"chef@dcat.fr"}, mailer.sent[0].To)
	assert.Equal(t, "smtp.dcat.fr", mailer.cfgs[0].SMTPHost)

	mailer.err = errors.New("connection refused")
	assert.Error(t, uc.SendTest(ctx, dto.TestMailRequest{Recipient: "chef@dcat.fr"}))
}
