// Package token inspects backend-issued bearer tokens without verifying
// them. The client never holds the signing secret — the backend is the only
// authority — so all it can do locally is read the registered claims to show
// the subject in `whoami` and skip a doomed verification round trip when the
// token is already past its expiry.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is returned when the token is not a parseable JWT.
var ErrMalformed = errors.New("token: malformed bearer token")

// Claims is the subset of registered claims the client reads.
type Claims struct {
	Subject   string
	ExpiresAt time.Time // zero when the token carries no exp claim
	IssuedAt  time.Time // zero when the token carries no iat claim
}

// Peek decodes the claims of a JWT without signature verification.
// Opaque (non-JWT) tokens return ErrMalformed; callers treat that as
// "nothing known locally" and fall back to backend verification.
func Peek(raw string) (*Claims, error) {
	parser := jwt.NewParser()
	tok, _, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, ErrMalformed
	}

	out := &Claims{}
	if sub, err := tok.Claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := tok.Claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if iat, err := tok.Claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	return out, nil
}

// Expired reports whether raw is a JWT whose exp claim is in the past.
// Opaque tokens and tokens without exp are never reported expired here;
// only the backend can judge them.
func Expired(raw string, now time.Time) bool {
	claims, err := Peek(raw)
	if err != nil {
		return false
	}
	if claims.ExpiresAt.IsZero() {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
