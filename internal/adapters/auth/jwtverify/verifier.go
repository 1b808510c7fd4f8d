package jwtverify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"pet-adoption-hub/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Verifier implementa auth.AuthVerifier con JWT firmado HMAC (HS256).
// El gateway de auth emite el token; acá solo se valida firma y claims.
type Verifier struct {
	secret []byte
	issuer string // opcional; si está, se exige match
}

// NewFromEnv lee AUTH_JWT_SECRET (obligatorio) y AUTH_JWT_ISSUER (opcional).
func NewFromEnv() (*Verifier, error) {
	secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))
	if secret == "" {
		return nil, fmt.Errorf("missing AUTH_JWT_SECRET")
	}
	return New([]byte(secret), strings.TrimSpace(os.Getenv("AUTH_JWT_ISSUER"))), nil
}

func New(secret []byte, issuer string) *Verifier {
	return &Verifier{secret: secret, issuer: issuer}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, ErrInvalidToken
	}

	sub, _ := mc.GetSubject()
	if strings.TrimSpace(sub) == "" {
		// Tokens viejos usan "id" en vez de "sub".
		sub = stringClaim(mc, "id")
	}
	if strings.TrimSpace(sub) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		UserID: sub,
		Name:   stringClaim(mc, "name"),
		Email:  stringClaim(mc, "email"),
	}, nil
}

func stringClaim(mc jwt.MapClaims, key string) string {
	if v, ok := mc[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
