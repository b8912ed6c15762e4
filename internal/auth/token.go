// Package auth issues and validates the signed identity tokens that
// authenticate API requests. Tokens are self-contained: validity is
// fully determined by the HMAC signature and the embedded expiry, so
// no session state is kept server-side and there is no revocation.
package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated identity derived from a validated
// token. It is rebuilt on every request and lives only in that
// request's context; it is never persisted.
type Principal struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
}

// ErrInvalidToken covers every validation failure mode: malformed
// token, signature mismatch or expiry in the past. Callers do not
// need to distinguish between them.
var ErrInvalidToken = errors.New("invalid token")

// TokenProvider issues and validates HS256 tokens. The signing key is
// derived once at construction and is read-only afterwards, so a
// single provider is safe under unlimited concurrent use.
type TokenProvider struct {
	key []byte
	ttl time.Duration
}

// NewTokenProvider derives the signing key from the configured secret.
// The secret is base64 re-encoded once here and the encoded form signs
// and verifies for the process lifetime. A non-positive ttl falls back
// to one hour.
func NewTokenProvider(secret string, ttl time.Duration) *TokenProvider {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenProvider{
		key: []byte(base64.StdEncoding.EncodeToString([]byte(secret))),
		ttl: ttl,
	}
}

// Issue signs a token for the principal. The email travels as the
// issuer claim, id and userName as custom claims. Expiry is fixed at
// issue time plus the provider TTL.
func (p *TokenProvider) Issue(pr Principal) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":       pr.ID,
		"userName": pr.UserName,
		"iss":      pr.Email,
		"iat":      now.Unix(),
		"exp":      now.Add(p.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(p.key)
}

// Validate checks signature and expiry and rebuilds the Principal from
// the claims. No clock-skew leeway is applied.
func (p *TokenProvider) Validate(token string) (Principal, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.key, nil
	})
	if err != nil || !tok.Valid {
		return Principal{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrInvalidToken
	}
	// Numeric claims decode as float64.
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return Principal{}, ErrInvalidToken
	}
	iss, _ := claims["iss"].(string)
	name, _ := claims["userName"].(string)
	return Principal{ID: uint64(id), Email: iss, UserName: name}, nil
}
