package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/report"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// movementRegistrar lo implementa *inventory.RegisterMovementUseCase.
type movementRegistrar interface {
	RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error)
}

// movementQueries lo implementa *inventory.MovementQueryUseCase.
type movementQueries interface {
	List(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error)
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	GetDocument(ctx context.Context, id string) (*entity.MovementDocument, error)
	FormData(ctx context.Context) (*dto.MovementFormDataResponse, error)
}

// movementReports lo implementa *report.ReportUseCase.
type movementReports interface {
	MovementVoucher(ctx context.Context, movementID string) (*report.Document, error)
	MovementsExport(ctx context.Context, filter repository.MovementFilter) (*report.Document, error)
}

// MovementHandler maneja las peticiones HTTP de movimientos de stock (protegido).
type MovementHandler struct {
	register movementRegistrar
	queries  movementQueries
	reports  movementReports
	log      *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(register movementRegistrar, queries movementQueries, reports movementReports, log *logger.Logger) *MovementHandler {
	return &MovementHandler{register: register, queries: queries, reports: reports, log: log}
}

// Register godoc
// @Summary      Registrar entrada o salida de stock
// @Description  Una transacción por movimiento: bloquea el producto, concilia seriales,
// @Description  actualiza cantidad y guarda el movimiento.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (ENTRY|EXIT), quantity, serial_numbers..."
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK, SERIAL_NOT_FOUND, TOO_MANY_SERIALS"
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.register.RegisterMovementFromRequest(c.UserContext(), userID, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().
		Str("movement_id", out.Movement.ID).
		Str("product_id", out.Product.ID).
		Str("type", out.Movement.Type).
		Int("quantity", out.Movement.Quantity).
		Int("stock", out.Product.Quantity).
		Msg("movimiento registrado")
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos (más reciente primero)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "UUID del producto"
// @Param        type        query  string  false  "ENTRY | EXIT"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD o RFC3339, día incluido)"
// @Param        limit       query  int     false  "Límite"  default(50)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	in, err := parseMovementQuery(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.queries.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	m, err := h.queries.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.FromMovement(m))
}

// Document godoc
// @Summary      Descargar el justificativo del movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      octet-stream
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/document [get]
func (h *MovementHandler) Document(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	doc, err := h.queries.GetDocument(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendFile(c, doc.Filename, doc.Mime, doc.Data)
}

// Voucher godoc
// @Summary      Bon PDF del movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/pdf [get]
func (h *MovementHandler) Voucher(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	doc, err := h.reports.MovementVoucher(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendFile(c, doc.Filename, doc.Mime, doc.Data)
}

// Export godoc
// @Summary      Exportar movimientos a XLSX
// @Tags         movements
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        product_id  query  string  false  "UUID del producto"
// @Param        type        query  string  false  "ENTRY | EXIT"
// @Param        from        query  string  false  "Desde"
// @Param        to          query  string  false  "Hasta"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/export [get]
func (h *MovementHandler) Export(c *fiber.Ctx) error {
	in, err := parseMovementQuery(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	filter := repository.MovementFilter{ProductID: in.ProductID, From: in.From, To: in.To}
	if in.Type != "" {
		t, ok := entity.ParseMovementType(in.Type)
		if !ok {
			return respondError(c, h.log, domain.ErrInvalidInput)
		}
		filter.Type = t
	}
	doc, err := h.reports.MovementsExport(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return sendFile(c, doc.Filename, doc.Mime, doc.Data)
}

// FormData godoc
// @Summary      Datos para el formulario de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MovementFormDataResponse
// @Router       /api/movements/form-data [get]
func (h *MovementHandler) FormData(c *fiber.Ctx) error {
	out, err := h.queries.FormData(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// parseMovementQuery lee filtros y paginación. "to" con solo fecha incluye el día completo.
func parseMovementQuery(c *fiber.Ctx) (dto.MovementListRequest, error) {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return in, domain.ErrInvalidInput
	}
	var err error
	if in.From, err = parseDate(c.Query("from"), false); err != nil {
		return in, err
	}
	if in.To, err = parseDate(c.Query("to"), true); err != nil {
		return in, err
	}
	return in, nil
}

func parseDate(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// pathID lee :id. Un id que no es UUID no puede existir: ErrNotFound.
func pathID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if uuid.Validate(id) != nil {
		return "", domain.ErrNotFound
	}
	return id, nil
}

// sendFile responde un archivo como descarga.
func sendFile(c *fiber.Ctx, filename, mime string, data []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, mime)
	return c.Send(data)
}
