package analytics

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/internal/application/report"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// DigestUseCase envía por correo el resumen del dashboard a los emails de notificación,
// con el export de stock adjunto. Lo dispara el scheduler.
type DigestUseCase struct {
	dashboard *DashboardUseCase
	reports   *report.ReportUseCase
	mailRepo  repository.MailConfigRepository
	mailer    ports.Mailer
}

// NewDigestUseCase construye el caso de uso.
func NewDigestUseCase(
	dashboard *DashboardUseCase,
	reports *report.ReportUseCase,
	mailRepo repository.MailConfigRepository,
	mailer ports.Mailer,
) *DigestUseCase {
	return &DigestUseCase{dashboard: dashboard, reports: reports, mailRepo: mailRepo, mailer: mailer}
}

// Send envía el resumen. Devuelve (0, nil) si el correo no está configurado
// o no hay destinatarios; si no, el número de destinatarios.
func (uc *DigestUseCase) Send(ctx context.Context) (int, error) {
	cfg, err := uc.mailRepo.Get(ctx)
	if err != nil {
		return 0, err
	}
	if !cfg.Complete() || len(cfg.NotificationEmails) == 0 {
		return 0, nil
	}
	summary, err := uc.dashboard.GetSummary(ctx)
	if err != nil {
		return 0, err
	}
	html, err := renderDigest(summary)
	if err != nil {
		return 0, err
	}
	msg := ports.MailMessage{
		To:       cfg.NotificationEmails,
		Subject:  "StockFlow - résumé du stock",
		HTMLBody: html,
		TextBody: fmt.Sprintf("Valeur du stock: %s\nArticles: %d\nEntrées (30 j): %d\nSorties (30 j): %d\n",
			summary.StockValue.StringFixed(2), summary.TotalUnits, summary.Entries30d, summary.Exits30d),
	}
	if uc.reports != nil {
		doc, err := uc.reports.StockExport(ctx)
		if err != nil {
			return 0, err
		}
		msg.Attachments = append(msg.Attachments, ports.Attachment{Filename: doc.Filename, Mime: doc.Mime, Data: doc.Data})
	}
	if err := uc.mailer.Send(ctx, *cfg, msg); err != nil {
		return 0, fmt.Errorf("digest: enviar: %w", err)
	}
	return len(cfg.NotificationEmails), nil
}

var digestTmpl = template.Must(template.New("digest").Parse(`<h2>Résumé du stock</h2>
<ul>
  <li>Valeur du stock : <b>{{.StockValue.StringFixed 2}} €</b></li>
  <li>Articles en stock : <b>{{.TotalUnits}}</b></li>
  <li>Entrées (30 jours) : <b>{{.Entries30d}}</b></li>
  <li>Sorties (30 jours) : <b>{{.Exits30d}}</b></li>
</ul>
<table border="1" cellpadding="4" cellspacing="0">
  <tr><th>Mois</th><th>Entrées</th><th>Sorties</th></tr>
  {{range .Monthly}}<tr><td>{{.Month}} {{.Year}}</td><td>{{.Entries}}</td><td>{{.Exits}}</td></tr>
  {{end}}
</table>
{{if .RecentMovements}}<h3>Derniers mouvements</h3>
<ul>{{range .RecentMovements}}
  <li>{{.Date.Format "02/01/2006"}} {{.Type}} x{{.Quantity}} {{.Product.Name}}</li>{{end}}
</ul>{{end}}`))

func renderDigest(s *dto.DashboardResponse) (string, error) {
	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, s); err != nil {
		return "", fmt.Errorf("digest: plantilla: %w", err)
	}
	return buf.String(), nil
}
