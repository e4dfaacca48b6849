package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrSerialNotFound    = errors.New("números de serie no encontrados")
	ErrTooManySerials    = errors.New("demasiados números de serie para la cantidad solicitada")
	ErrAdminExists       = errors.New("ya existe una cuenta de administrador")
	ErrMailNotConfigured = errors.New("configuración SMTP incompleta")
)

// SerialNotFoundError lista los seriales enviados en una salida que no están en el stock del producto.
// errors.Is(err, ErrSerialNotFound) es true.
type SerialNotFoundError struct {
	Serials []string
}

func (e *SerialNotFoundError) Error() string {
	return ErrSerialNotFound.Error() + ": " + strings.Join(e.Serials, ", ")
}

// Is permite comparar con el sentinel.
func (e *SerialNotFoundError) Is(target error) bool {
	return target == ErrSerialNotFound
}
