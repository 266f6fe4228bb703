package auth

import (
	"context"
	"fmt"
	"time"

	"zapshift/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified caller resolved from a bearer token.
type Identity struct {
	Email string
	Name  string
}

// TokenVerifier validates an opaque bearer token against the identity
// provider and resolves the caller. Implementations must return
// apperr.ErrorUnauthorized (or a wrap of it) on any failure.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Claims carried by the identity provider's tokens.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies HS256-signed identity tokens.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrorUnauthorized, err)
	}
	if !token.Valid {
		return nil, apperr.ErrorInvalidToken
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: token carries no email", apperr.ErrorUnauthorized)
	}

	return &Identity{Email: claims.Email, Name: claims.Name}, nil
}

// GenerateToken signs an identity token. Used by tests and local tooling; in
// production tokens come from the external identity provider.
func GenerateToken(email, name string, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	return token.SignedString(secret)
}
