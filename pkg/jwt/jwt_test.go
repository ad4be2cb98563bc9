package jwt_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Multitenant-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "multitenant-api-test"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 10, 3, testIssuer, 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(10), claims.UserID)
	assert.Equal(t, int64(3), claims.TenantID)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.Equal(t, "10", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 10, 3, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrExpired)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 10, 3, testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidSignature)
}

func TestParse_PayloadAlterado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, 10, 3, testIssuer, 60)
	require.NoError(t, err)

	// Cambiar el tenant del payload sin volver a firmar.
	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	forged := strings.Replace(string(payload), `"tenant_id":3`, `"tenant_id":4`, 1)
	require.NotEqual(t, string(payload), forged)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = pkgjwt.Parse(testSecret, strings.Join(parts, "."))
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidSignature)
}

func TestParse_MalFormado(t *testing.T) {
	for _, raw := range []string{"token.invalido.aqui", "abc", "", "a.b"} {
		_, err := pkgjwt.Parse(testSecret, raw)
		assert.ErrorIs(t, err, pkgjwt.ErrMalformed, "raw %q", raw)
	}
}

func TestParse_AlgoritmoNone(t *testing.T) {
	claims := pkgjwt.Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           1,
		TenantID:         1,
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalidSignature)
}

func TestParse_SinExpiracion(t *testing.T) {
	claims := pkgjwt.Claims{UserID: 1, TenantID: 1}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrMalformed)
}

func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", 1, 1, testIssuer, 60)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)

	_, err = pkgjwt.Parse("", "x.y.z")
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}
