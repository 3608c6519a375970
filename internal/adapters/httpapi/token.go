package httpapi

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/example/esys/internal/core/roles"
	"github.com/example/esys/internal/ctxutil"
)

const tokenIssuer = "esys"

// Claims carries the actor in an API bearer token.
type Claims struct {
	jwt.RegisteredClaims
	Role   string `json:"role"`
	BaseID string `json:"base_id,omitempty"`
	Tail   string `json:"aircraft_tail,omitempty"`
}

// TokenIssuer signs and verifies HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a TokenIssuer.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for actor.
func (t *TokenIssuer) Issue(actor ctxutil.Actor) (string, time.Time, error) {
	now := t.now()
	expires := now.Add(t.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   actor.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Role:   actor.Role,
		BaseID: actor.BaseID,
		Tail:   actor.Tail,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expires, nil
}

// Parse verifies a token and returns the actor it carries.
func (t *TokenIssuer) Parse(tokenString string) (ctxutil.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return ctxutil.Actor{}, fmt.Errorf("invalid token: %w", err)
	}
	if claims.Subject == "" {
		return ctxutil.Actor{}, errors.New("invalid token: missing subject")
	}
	if !roles.IsValid(claims.Role) {
		return ctxutil.Actor{}, fmt.Errorf("invalid token: unknown role %q", claims.Role)
	}

	return ctxutil.Actor{
		Username: claims.Subject,
		Role:     claims.Role,
		BaseID:   claims.BaseID,
		Tail:     claims.Tail,
	}, nil
}
