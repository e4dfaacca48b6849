// Package validation valida DTOs con las etiquetas `validate` de go-playground/validator.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/stockflow-api/internal/domain"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Usa el nombre JSON del campo en los mensajes.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Errors errores de validación por campo. errors.Is(err, domain.ErrInvalidInput) es true.
type Errors struct {
	Fields map[string]string
}

func (e *Errors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return domain.ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *Errors) Is(target error) bool { return target == domain.ErrInvalidInput }

// Struct valida s. Devuelve nil o *Errors.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.ErrInvalidInput
	}
	out := &Errors{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "RegisterMovementRequest.quantity" -> "quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "obligatorio"
	case "email":
		return "email inválido"
	case "uuid":
		return "uuid inválido"
	case "base64":
		return "base64 inválido"
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	}
	return "inválido (" + fe.Tag() + ")"
}
