package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

const (
	scopeClaim = "scope"
	// ScopeAdmin grants access to the admin dashboard and usage reset controls.
	ScopeAdmin = "admin"
)

// Claims is the subset of token claims the service relies on.
type Claims struct {
	Subject string
	Scope   string
}

// VerifyToken checks signature and expiry and returns the token claims.
func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (*Claims, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return nil, err
	}
	c := &Claims{Subject: t.Subject()}
	if v, ok := t.Get(scopeClaim); ok {
		c.Scope = fmt.Sprint(v)
	}
	return c, nil
}

// NewToken creates an admin scoped JWT. Subject is optional and ends up
// in request logs.
func NewToken(jwtAuth *jwtauth.JWTAuth, ttl time.Duration, subject string) (string, error) {
	claims := map[string]interface{}{
		scopeClaim: ScopeAdmin,
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, ttl)
	if subject != "" {
		claims["sub"] = subject
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return "", err
	}
	return ts, nil
}
