package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/analytics"
	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

type fakeAnalytics struct {
	totals    repository.StockTotals
	window    repository.MovementTotals
	monthly   []repository.MonthlyMovements
	gotFrom   time.Time
	gotWindow [2]time.Time
	err       error
}

func (f *fakeAnalytics) GetStockTotals(context.Context) (repository.StockTotals, error) {
	return f.totals, f.err
}

func (f *fakeAnalytics) GetMovementTotals(_ context.Context, from, to time.Time) (repository.MovementTotals, error) {
	f.gotWindow = [2]time.Time{from, to}
	return f.window, nil
}

func (f *fakeAnalytics) GetMonthlyMovements(_ context.Context, from time.Time) ([]repository.MonthlyMovements, error) {
	f.gotFrom = from
	return f.monthly, nil
}

type fakeMovements struct {
	list     []*entity.Movement
	gotLimit int
}

func (f *fakeMovements) Create(context.Context, *entity.Movement) error { return nil }
func (f *fakeMovements) GetByID(context.Context, string) (*entity.Movement, error) {
	return nil, nil
}
func (f *fakeMovements) List(_ context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	f.gotLimit = filter.Limit
	return f.list, nil
}
func (f *fakeMovements) GetDocument(context.Context, string) (*entity.MovementDocument, error) {
	return nil, nil
}
func (f *fakeMovements) CountByProduct(context.Context, string) (int, error) { return 0, nil }

var fixedNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func newDashboard(a *fakeAnalytics, m *fakeMovements) *analytics.DashboardUseCase {
	uc := analytics.NewDashboardUseCase(a, m)
	uc.SetNow(func() time.Time { return fixedNow })
	return uc
}

func TestGetSummary(t *testing.T) {
	a := &fakeAnalytics{
		totals: repository.StockTotals{StockValue: decimal.RequireFromString("1234.567"), TotalUnits: 42},
		window: repository.MovementTotals{Entries: 10, Exits: 4},
		monthly: []repository.MonthlyMovements{
			{Month: time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), Entries: 3},
			{Month: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), Entries: 7, Exits: 4},
		},
	}
	m := &fakeMovements{list: []*entity.Movement{{ID: "m1", Type: entity.MovementTypeExit, Quantity: 2, ProductName: "Caméra"}}}

	out, err := newDashboard(a, m).GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1234.57", out.StockValue.String())
	assert.Equal(t, int64(42), out.TotalUnits)
	assert.Equal(t, int64(10), out.Entries30d)
	assert.Equal(t, int64(4), out.Exits30d)
	assert.Equal(t, 5, m.gotLimit)
	require.Len(t, out.RecentMovements, 1)
	assert.Equal(t, "EXIT", out.RecentMovements[0].Type)

	assert.Equal(t, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), a.gotFrom)
	assert.Equal(t, fixedNow.AddDate(0, 0, -30), a.gotWindow[0])

	require.Len(t, out.Monthly, 6)
	labels := make([]string, 0, 6)
	for _, p := range out.Monthly {
		labels = append(labels, p.Month)
	}
	assert.Equal(t, []string{"oct.", "nov.", "déc.", "janv.", "févr.", "mars"}, labels)
	assert.Equal(t, int64(3), out.Monthly[2].Entries)
	assert.Equal(t, 2025, out.Monthly[2].Year)
	assert.Equal(t, int64(0), out.Monthly[3].Entries)
	assert.Equal(t, int64(4), out.Monthly[5].Exits)
}

func TestGetSummary_MesesEnUTC(t *testing.T) {
	bogota := time.FixedZone("COT", -5*60*60)
	a := &fakeAnalytics{
		monthly: []repository.MonthlyMovements{
			// 2026-03-01 00:00 UTC escaneado en otra zona horaria: 28 de febrero a las 19:00
			{Month: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC).In(bogota), Entries: 9},
		},
	}
	uc := analytics.NewDashboardUseCase(a, &fakeMovements{})
	uc.SetNow(func() time.Time { return time.Date(2026, time.March, 15, 20, 0, 0, 0, bogota) })

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), a.gotFrom)
	require.Len(t, out.Monthly, 6)
	assert.Equal(t, "févr.", out.Monthly[4].Month)
	assert.Equal(t, int64(0), out.Monthly[4].Entries)
	assert.Equal(t, "mars", out.Monthly[5].Month)
	assert.Equal(t, int64(9), out.Monthly[5].Entries)
}

func TestGetSummary_PropagaErrores(t *testing.T) {
	a := &fakeAnalytics{err: errors.New("db caída")}

	_, err := newDashboard(a, &fakeMovements{}).GetSummary(context.Background())
	assert.ErrorContains(t, err, "totales de stock")
}

type fakeMailConfig struct{ cfg *entity.MailConfig }

func (f *fakeMailConfig) Get(context.Context) (*entity.MailConfig, error) { return f.cfg, nil }
func (f *fakeMailConfig) Save(context.Context, *entity.MailConfig) error  { return nil }

type fakeMailer struct{ sent []ports.MailMessage }

func (f *fakeMailer) Send(_ context.Context, _ entity.MailConfig, msg ports.MailMessage) error {
	f.sent = append(f.sent, msg)
	return nil
}

func TestDigest(t *testing.T) {
	dash := newDashboard(&fakeAnalytics{window: repository.MovementTotals{Entries: 3}}, &fakeMovements{})
	mailRepo := &fakeMailConfig{}
	mailer := &fakeMailer{}
	uc := analytics.NewDigestUseCase(dash, nil, mailRepo, mailer)
	ctx := context.Background()

	n, err := uc.Send(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "sin configuración no se envía nada")

	mailRepo.cfg = &entity.MailConfig{SMTPHost: "smtp", SMTPPort: 587, SMTPUser: "u"}
	n, err = uc.Send(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "sin destinatarios no se envía nada")

	mailRepo.cfg.NotificationEmails = []string{"chef@dcat.fr", "compta@dcat.fr"}
	n, err = uc.Send(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"chef@dcat.fr", "compta@dcat.fr"}, mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].HTMLBody, "Entrées (30 jours) : <b>3</b>")
	assert.Contains(t, mailer.sent[0].TextBody, "Valeur du stock: 0.00")
}
