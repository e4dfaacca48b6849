package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/pkg/validation"
)

func TestStruct_Valido(t *testing.T) {
	err := validation.Struct(dto.PartnerRequest{
		Name:        "ACME",
		ContactName: "Jeanne",
		Email:       "jeanne@acme.fr",
		Phone1:      "0102030405",
	})
	assert.NoError(t, err)
}

func TestStruct_ErroresPorCampoJSON(t *testing.T) {
	err := validation.Struct(dto.CreateUserRequest{
		Name:     "Paul",
		Username: "paul",
		Email:    "no-es-email",
		Password: "123",
		Role:     "root",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *validation.Errors
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email inválido", verr.Fields["email"])
	assert.Equal(t, "mínimo 8", verr.Fields["password"])
	assert.Contains(t, verr.Fields["role"], "admin marketing technician")
}

func TestStruct_Anidados(t *testing.T) {
	err := validation.Struct(dto.RegisterMovementRequest{
		ProductID:     "11111111-1111-1111-1111-111111111111",
		Type:          "ENTRY",
		Quantity:      1,
		SerialNumbers: []string{"A", ""},
	})
	var verr *validation.Errors
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "obligatorio", verr.Fields["serial_numbers[1]"])
}
