package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/auth"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// AuthHandler maneja login, creación del primer admin y sesión actual.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	users *usecase.UserUseCase
	log   *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, users *usecase.UserUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, users: users, log: log}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "usernameOrEmail, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Setup godoc
// @Summary      Crear la primera cuenta de administrador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetupRequest  true  "name, username, email, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/setup [post]
func (h *AuthHandler) Setup(c *fiber.Ctx) error {
	var in dto.SetupRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Setup(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CheckAdmin godoc
// @Summary      Indica si ya existe un administrador
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.CheckAdminResponse
// @Router       /api/auth/check-admin [get]
func (h *AuthHandler) CheckAdmin(c *fiber.Ctx) error {
	out, err := h.uc.CheckAdmin(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario de la sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.users.GetByID(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
