package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estantedigital/plataforma/internal/entities"
)

var testSecret = []byte("test-secret-key")

func testPessoa() *entities.Pessoa {
	return &entities.Pessoa{
		IDPessoa:           42,
		Username:           "ana",
		EmailInstitucional: "ana@x.org",
		Role:               entities.RoleUser,
		Tipo:               entities.TipoPessoaFisica,
	}
}

func TestIssueAndVerifyToken(t *testing.T) {
	token, err := IssueToken(testPessoa(), "abc123", testSecret, time.Hour)
	require.NoError(t, err)

	claims := VerifyToken(token, testSecret)

	require.NotNil(t, claims)
	assert.EqualValues(t, 42, claims.ID)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "ana@x.org", claims.Email)
	assert.Equal(t, entities.RoleUser, claims.Role)
	assert.Equal(t, entities.TipoPessoaFisica, claims.Tipo)
	assert.Equal(t, "abc123", claims.ProfileID)
}

func TestVerifyToken_Expired(t *testing.T) {
	token, err := IssueToken(testPessoa(), "", testSecret, -time.Minute)
	require.NoError(t, err)

	assert.Nil(t, VerifyToken(token, testSecret))
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := IssueToken(testPessoa(), "", testSecret, time.Hour)
	require.NoError(t, err)

	assert.Nil(t, VerifyToken(token, []byte("other-secret")))
}

func TestVerifyToken_Malformed(t *testing.T) {
	assert.Nil(t, VerifyToken("not.a.token", testSecret))
	assert.Nil(t, VerifyToken("", testSecret))
}

func TestIssueToken_DefaultExpiry(t *testing.T) {
	token, err := IssueToken(testPessoa(), "", testSecret, 0)
	require.NoError(t, err)

	claims := VerifyToken(token, testSecret)

	require.NotNil(t, claims)
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, DefaultTokenExpiry-time.Minute)
	assert.LessOrEqual(t, remaining, DefaultTokenExpiry)
}
