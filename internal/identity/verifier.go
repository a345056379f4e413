// Package identity re-authenticates signers at the moment of signing.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrAuthenticationFailed wraps every credential rejection so callers
// can map it without inspecting detail text.
var ErrAuthenticationFailed = errors.New("falha de autenticação")

// Verifier is the re-authentication capability injected into the sign
// transition. Implementations must check the credential against the
// identity provider at call time; an existing session is not enough.
type Verifier interface {
	Verify(ctx context.Context, email, credential string) error
}

// TokenVerifier validates short-lived signature tokens. The platform's
// auth service issues one after the user re-enters their password; it is
// only accepted for the user it was issued to and within MaxAge of
// issuance, so it cannot be hoarded across a session.
type TokenVerifier struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

func NewTokenVerifier(secret string, maxAge time.Duration) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), maxAge: maxAge, now: time.Now}
}

func (v *TokenVerifier) Verify(ctx context.Context, email, credential string) error {
	if strings.TrimSpace(credential) == "" {
		return fmt.Errorf("%w: credencial ausente", ErrAuthenticationFailed)
	}

	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(credential, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return fmt.Errorf("%w: credencial inválida", ErrAuthenticationFailed)
	}

	if !strings.EqualFold(strings.TrimSpace(claims.Subject), strings.TrimSpace(email)) {
		return fmt.Errorf("%w: credencial emitida para outro usuário", ErrAuthenticationFailed)
	}
	if claims.IssuedAt == nil || v.now().Sub(claims.IssuedAt.Time) > v.maxAge {
		return fmt.Errorf("%w: credencial expirada, autentique-se novamente", ErrAuthenticationFailed)
	}
	return nil
}
