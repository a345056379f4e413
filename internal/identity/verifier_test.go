package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "assinatura-secreta"

func issueToken(t *testing.T, subject string, issuedAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  subject,
		IssuedAt: jwt.NewNumericDate(issuedAt),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newVerifier(now time.Time) *TokenVerifier {
	v := NewTokenVerifier(testSecret, 5*time.Minute)
	v.now = func() time.Time { return now }
	return v
}

func TestVerifyAcceptsFreshTokenForSubject(t *testing.T) {
	now := time.Date(2024, time.July, 2, 10, 0, 0, 0, time.UTC)
	v := newVerifier(now)
	token := issueToken(t, "carlos@prefeitura.gov.br", now.Add(-time.Minute))

	assert.NoError(t, v.Verify(context.Background(), "Carlos@prefeitura.gov.br", token))
}

func TestVerifyRejectsWrongSubject(t *testing.T) {
	now := time.Date(2024, time.July, 2, 10, 0, 0, 0, time.UTC)
	v := newVerifier(now)
	token := issueToken(t, "ana@prefeitura.gov.br", now)

	err := v.Verify(context.Background(), "carlos@prefeitura.gov.br", token)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestVerifyRejectsStaleToken(t *testing.T) {
	now := time.Date(2024, time.July, 2, 10, 0, 0, 0, time.UTC)
	v := newVerifier(now)
	token := issueToken(t, "carlos@prefeitura.gov.br", now.Add(-10*time.Minute))

	err := v.Verify(context.Background(), "carlos@prefeitura.gov.br", token)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	v := newVerifier(time.Now())
	assert.ErrorIs(t, v.Verify(context.Background(), "carlos@prefeitura.gov.br", ""), ErrAuthenticationFailed)
	assert.ErrorIs(t, v.Verify(context.Background(), "carlos@prefeitura.gov.br", "nao-um-token"), ErrAuthenticationFailed)
}
