package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/pkg/logger"
	"github.com/jhoicas/stockflow-api/pkg/validation"
)

// respondError traduce un error de dominio a status + dto.ErrorResponse.
// Los errores no reconocidos se registran y se responden como 500 sin detalle.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, body := mapError(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("user_id", GetUserID(c)).
			Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var verr *validation.Errors
	var serr *domain.SerialNotFoundError

	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: verr.Fields}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrMailNotConfigured):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "MAIL_NOT_CONFIGURED", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}
	case errors.As(err, &serr):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "SERIAL_NOT_FOUND", Message: err.Error(), Serials: serr.Serials}
	case errors.Is(err, domain.ErrSerialNotFound):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "SERIAL_NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrTooManySerials):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "TOO_MANY_SERIALS", Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrAdminExists):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "ADMIN_EXISTS", Message: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
}

// ErrorHandler manejador global de fiber: errores de ruta (404/405), body demasiado grande
// y panics recuperados.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: fiberCode(fe.Code), Message: fe.Message})
		}
		return respondError(c, log, err)
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	}
	return "HTTP_ERROR"
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
