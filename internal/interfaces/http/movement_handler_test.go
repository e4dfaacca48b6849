package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/report"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	apphttp "github.com/jhoicas/stockflow-api/internal/interfaces/http"
	"github.com/jhoicas/stockflow-api/pkg/logger"
	"github.com/jhoicas/stockflow-api/pkg/validation"
)

const testMovementID = "5b0c7a52-8d3e-4d8e-9c55-1f8f2b1c0a01"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeRegistrar struct {
	err    error
	userID string
	in     dto.RegisterMovementRequest
}

func (f *fakeRegistrar) RegisterMovementFromRequest(_ context.Context, userID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	f.userID, f.in = userID, in
	if f.err != nil {
		return nil, f.err
	}
	return &dto.RegisterMovementResponse{
		Product:  dto.ProductResponse{ID: in.ProductID, Quantity: 8},
		Movement: dto.MovementResponse{ID: testMovementID, Type: "ENTRY", Quantity: in.Quantity},
	}, nil
}

type fakeQueries struct {
	listIn dto.MovementListRequest
	doc    *entity.MovementDocument
}

func (f *fakeQueries) List(_ context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	f.listIn = in
	return &dto.MovementListResponse{Items: []dto.MovementResponse{}}, nil
}

func (f *fakeQueries) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	if id != testMovementID {
		return nil, domain.ErrNotFound
	}
	return &entity.Movement{ID: id, Type: entity.MovementTypeExit, Quantity: 2}, nil
}

func (f *fakeQueries) GetDocument(context.Context, string) (*entity.MovementDocument, error) {
	if f.doc == nil {
		return nil, domain.ErrNotFound
	}
	return f.doc, nil
}

func (f *fakeQueries) FormData(context.Context) (*dto.MovementFormDataResponse, error) {
	return &dto.MovementFormDataResponse{}, nil
}

type fakeReports struct {
	filter repository.MovementFilter
}

func (f *fakeReports) MovementVoucher(_ context.Context, id string) (*report.Document, error) {
	return &report.Document{Filename: "bon-sortie-routeur-20260315.pdf", Mime: "application/pdf", Data: []byte("%PDF-1.3")}, nil
}

func (f *fakeReports) MovementsExport(_ context.Context, filter repository.MovementFilter) (*report.Document, error) {
	f.filter = filter
	return &report.Document{Filename: "mouvements.xlsx", Mime: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Data: []byte("PK")}, nil
}

type movementApp struct {
	app       *fiber.App
	registrar *fakeRegistrar
	queries   *fakeQueries
	reports   *fakeReports
}

// newMovementApp monta las rutas de movimientos como en el router real.
func newMovementApp() *movementApp {
	m := &movementApp{registrar: &fakeRegistrar{}, queries: &fakeQueries{}, reports: &fakeReports{}}
	h := apphttp.NewMovementHandler(m.registrar, m.queries, m.reports, logger.Nop())

	m.app = fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	g := m.app.Group("/api/movements", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireRole("admin", "marketing"))
	g.Get("/export", h.Export)
	g.Get("/", h.List)
	g.Post("/", h.Register)
	g.Get("/:id", h.GetByID)
	g.Get("/:id/document", h.Document)
	g.Get("/:id/pdf", h.Voucher)
	return m
}

func (m *movementApp) do(t *testing.T, method, target, body, role string) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := m.app.Test(req, -1)
	require.NoError(t, err)

	var e dto.ErrorResponse
	if resp.StatusCode >= 400 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	}
	return resp, e
}

const validBody = `{"product_id":"9d1f0c3e-3b7a-4c1e-8f52-6a0e4b2d7c11","type":"ENTRY","quantity":3,"serial_numbers":["A","B"]}`

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/movements
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_Creado_UsaUsuarioDelToken(t *testing.T) {
	m := newMovementApp()

	resp, _ := m.do(t, http.MethodPost, "/api/movements", validBody, "marketing")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, testUserID, m.registrar.userID)
	assert.Equal(t, []string{"A", "B"}, m.registrar.in.SerialNumbers)

	var out dto.RegisterMovementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, testMovementID, out.Movement.ID)
	assert.Equal(t, 8, out.Product.Quantity)
}

func TestRegister_ErroresDeNegocio(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"entrada inválida", domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{"validación por campo", &validation.Errors{Fields: map[string]string{"quantity": "min"}}, http.StatusBadRequest, "VALIDATION"},
		{"producto inexistente", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"stock insuficiente", domain.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"demasiados seriales", domain.ErrTooManySerials, http.StatusConflict, "TOO_MANY_SERIALS"},
		{"duplicado", domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{"conflicto", domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"error interno", errors.New("conexión perdida"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newMovementApp()
			m.registrar.err = tc.err

			resp, body := m.do(t, http.MethodPost, "/api/movements", validBody, "admin")
			resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, body.Code)
			assert.NotContains(t, body.Message, "conexión perdida")
		})
	}
}

func TestRegister_SerialNoEncontrado_ListaSeriales(t *testing.T) {
	m := newMovementApp()
	m.registrar.err = &domain.SerialNotFoundError{Serials: []string{"X", "Y"}}

	resp, body := m.do(t, http.MethodPost, "/api/movements", validBody, "admin")
	resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "SERIAL_NOT_FOUND", body.Code)
	assert.Equal(t, []string{"X", "Y"}, body.Serials)
}

func TestRegister_CampoDeValidacion(t *testing.T) {
	m := newMovementApp()
	m.registrar.err = &validation.Errors{Fields: map[string]string{"product_id": "uuid inválido"}}

	resp, body := m.do(t, http.MethodPost, "/api/movements", validBody, "admin")
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "uuid inválido", body.Fields["product_id"])
}

func TestRegister_CuerpoInvalido(t *testing.T) {
	m := newMovementApp()

	resp, body := m.do(t, http.MethodPost, "/api/movements", `{"quantity":`, "admin")
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", body.Code)
}

func TestRegister_TechnicianNoPuede(t *testing.T) {
	m := newMovementApp()

	resp, body := m.do(t, http.MethodPost, "/api/movements", validBody, "technician")
	resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body.Code)
	assert.Empty(t, m.registrar.userID, "el caso de uso no debe ejecutarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas y descargas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID(t *testing.T) {
	m := newMovementApp()

	resp, _ := m.do(t, http.MethodGet, "/api/movements/"+testMovementID, "", "admin")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.MovementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "EXIT", out.Type)
	assert.Equal(t, []string{}, out.SerialNumbers)
}

func TestGetByID_IDNoUUID_Es404(t *testing.T) {
	m := newMovementApp()

	resp, body := m.do(t, http.MethodGet, "/api/movements/abc", "", "admin")
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestList_Filtros(t *testing.T) {
	m := newMovementApp()

	resp, _ := m.do(t, http.MethodGet, "/api/movements?type=EXIT&from=2026-03-01&to=2026-03-31&limit=10", "", "admin")
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	in := m.queries.listIn
	assert.Equal(t, "EXIT", in.Type)
	assert.Equal(t, 10, in.Limit)
	require.NotNil(t, in.From)
	require.NotNil(t, in.To)
	assert.Equal(t, "2026-03-01T00:00:00Z", in.From.Format("2006-01-02T15:04:05Z07:00"))
	assert.Equal(t, 31, in.To.Day())
	assert.Equal(t, 23, in.To.Hour(), "'to' con solo fecha incluye el día completo")
}

func TestList_FechaInvalida(t *testing.T) {
	m := newMovementApp()

	resp, body := m.do(t, http.MethodGet, "/api/movements?from=ayer", "", "admin")
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
}

func TestDocument_Descarga(t *testing.T) {
	m := newMovementApp()
	m.queries.doc = &entity.MovementDocument{Filename: "facture.pdf", Mime: "application/pdf", Data: []byte("%PDF")}

	resp, _ := m.do(t, http.MethodGet, "/api/movements/"+testMovementID+"/document", "", "admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "facture.pdf")
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF", string(data))
}

func TestDocument_SinJustificativo_Es404(t *testing.T) {
	m := newMovementApp()

	resp, _ := m.do(t, http.MethodGet, "/api/movements/"+testMovementID+"/document", "", "admin")
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVoucherYExport(t *testing.T) {
	m := newMovementApp()

	resp, _ := m.do(t, http.MethodGet, "/api/movements/"+testMovementID+"/pdf", "", "marketing")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "bon-sortie")

	resp, _ = m.do(t, http.MethodGet, "/api/movements/export?type=sortie", "", "marketing")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.MovementTypeExit, m.reports.filter.Type)
}
