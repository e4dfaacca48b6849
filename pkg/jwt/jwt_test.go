package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/stockflow-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateYParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "alice", "marketing", "stockflow-test", 5)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "marketing", claims.Role)
	assert.Equal(t, "stockflow-test", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "alice", "admin", "", 5)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "alice", "admin", "", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "alice", "admin", "", 5)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)

	_, err = pkgjwt.Parse("", "x.y.z")
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}
