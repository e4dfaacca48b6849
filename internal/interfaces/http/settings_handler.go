package http

import (
	"slices"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// SettingsHandler Parámetros: tablas de referencia, usuarios y configuración de correo.
type SettingsHandler struct {
	uc   *usecase.SettingsUseCase
	mail *usecase.MailUseCase
	log  *logger.Logger
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase, mail *usecase.MailUseCase, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{uc: uc, mail: mail, log: log}
}

// settingsRoles roles con acceso a cada tabla. Partners y proyectos los gestiona también marketing.
func settingsRoles(endpoint string) []string {
	switch endpoint {
	case usecase.EndpointPartners, usecase.EndpointProjects:
		return []string{entity.RoleAdmin, entity.RoleMarketing}
	}
	return []string{entity.RoleAdmin}
}

// RequireSettingsRole aplica settingsRoles según :endpoint. Endpoint desconocido → 404.
func RequireSettingsRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		endpoint := c.Params("endpoint")
		if !slices.Contains(usecase.SettingsEndpoints, endpoint) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tabla desconocida: " + endpoint})
		}
		return RequireRole(settingsRoles(endpoint)...)(c)
	}
}

// Overview godoc
// @Summary      Todas las tablas de Parámetros
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar una tabla de Parámetros
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        endpoint  path  string  true  "categories|brands|models|suppliers|locations|partners|projects|users"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/{endpoint} [get]
func (h *SettingsHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Params("endpoint"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear un registro en una tabla de Parámetros
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        endpoint  path  string  true  "categories|brands|models|suppliers|locations|partners|projects|users"
// @Success      201
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/settings/{endpoint} [post]
func (h *SettingsHandler) Create(c *fiber.Ctx) error {
	out, err := h.uc.Create(c.UserContext(), c.Params("endpoint"), c.BodyParser)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar un registro de Parámetros
// @Tags         settings
// @Security     Bearer
// @Param        endpoint  path  string  true  "Tabla"
// @Param        id        path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "registro referenciado"
// @Router       /api/settings/{endpoint}/{id} [delete]
func (h *SettingsHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if uuid.Validate(id) != nil {
		return respondError(c, h.log, domain.ErrNotFound)
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("endpoint"), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMail godoc
// @Summary      Configuración SMTP (sin contraseña)
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MailConfigResponse
// @Router       /api/settings/mail [get]
func (h *SettingsHandler) GetMail(c *fiber.Ctx) error {
	out, err := h.mail.Get(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return c.JSON(fiber.Map{})
	}
	return c.JSON(out)
}

// SaveMail godoc
// @Summary      Guardar configuración SMTP
// @Description  Sin smtp_pass se conserva la contraseña guardada.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MailConfigRequest  true  "Configuración"
// @Success      200   {object}  dto.MailConfigResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/mail [post]
func (h *SettingsHandler) SaveMail(c *fiber.Ctx) error {
	var in dto.MailConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.mail.Save(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// TestMail godoc
// @Summary      Enviar correo de prueba
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TestMailRequest  true  "Destinatario"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse  "configuración incompleta"
// @Router       /api/settings/mail/test [post]
func (h *SettingsHandler) TestMail(c *fiber.Ctx) error {
	var in dto.TestMailRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.mail.SendTest(c.UserContext(), in); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "correo de prueba enviado"})
}
