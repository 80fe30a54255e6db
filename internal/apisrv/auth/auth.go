package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jekabolt/grbpwr-deals/internal/auth/jwt"
)

const (
	// AuthHeaderKey is header key to match auth token
	AuthHeaderKey = "Authorization"
)

type ctxKey struct{}

// Server issues and checks admin tokens.
type Server struct {
	JwtAuth *jwtauth.JWTAuth
	jwtTTL  time.Duration
}

// Config contains the configuration for the auth server.
type Config struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	JWTTTL    string `mapstructure:"jwt_ttl"`
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.JWTSecret, validation.Required, validation.Length(8, 0)),
		validation.Field(&c.JWTTTL, validation.Required),
	)
}

// New creates a new auth server.
func New(c *Config) (*Server, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}
	ttl, err := time.ParseDuration(c.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid jwt ttl: %w", err)
	}
	return &Server{
		JwtAuth: jwtauth.New("HS256", []byte(c.JWTSecret), nil),
		jwtTTL:  ttl,
	}, nil
}

// IssueToken returns an admin token for subject valid for the configured ttl.
func (s *Server) IssueToken(subject string) (string, error) {
	return jwt.NewToken(s.JwtAuth, s.jwtTTL, subject)
}

// WithAuth middleware checks if the user is authenticated.
func (s *Server) WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get(AuthHeaderKey), "Bearer ")
		claims, err := jwt.VerifyToken(s.JwtAuth, token)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid token %v", err.Error()), http.StatusUnauthorized)
			return
		}
		if claims.Scope != jwt.ScopeAdmin {
			slog.Default().WarnContext(r.Context(), "token without admin scope",
				slog.String("sub", claims.Subject),
			)
			http.Error(w, "insufficient scope", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims.Subject)))
	})
}

// Subject returns the token subject of an authenticated request.
func Subject(ctx context.Context) string {
	sub, _ := ctx.Value(ctxKey{}).(string)
	return sub
}
