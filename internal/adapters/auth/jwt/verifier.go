// Package jwt verifica bearer tokens HS256 firmados por el proveedor de
// identidad (secreto compartido).
package jwt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pet-notes/internal/ports/auth"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

type Config struct {
	Secret string
	Issuer string // opcional; si viene, iss tiene que coincidir
}

type Verifier struct {
	secret []byte
	opts   []gojwt.ParserOption
}

func NewVerifier(cfg Config) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, ErrNotConfigured
	}
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
	}
	if iss := strings.TrimSpace(cfg.Issuer); iss != "" {
		opts = append(opts, gojwt.WithIssuer(iss))
	}
	return &Verifier{secret: []byte(secret), opts: opts}, nil
}

// Verify implementa auth.AuthVerifier. El user id sale de "sub" o, si no
// está, de "user_id" (string o número).
func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	parsed, err := gojwt.Parse(token, func(t *gojwt.Token) (any, error) {
		if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method: %v", ErrInvalidToken, t.Header["alg"])
		}
		return v.secret, nil
	}, v.opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	mc, ok := parsed.Claims.(gojwt.MapClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	uid := claimString(mc, "sub")
	if uid == "" {
		uid = claimString(mc, "user_id")
	}
	if uid == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return auth.Claims{
		UserID: uid,
		Email:  claimString(mc, "email"),
	}, nil
}

func claimString(mc gojwt.MapClaims, key string) string {
	switch x := mc[key].(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatInt(int64(x), 10)
	default:
		return ""
	}
}
