package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/jekabolt/grbpwr-deals/internal/apisrv/admin"
	"github.com/jekabolt/grbpwr-deals/internal/apisrv/auth"
	"github.com/jekabolt/grbpwr-deals/internal/dto"
	cmw "github.com/jekabolt/grbpwr-deals/internal/middleware"
	"github.com/jekabolt/grbpwr-deals/internal/ratelimit"
	"github.com/jekabolt/grbpwr-deals/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Config is the configuration for the http server
type Config struct {
	Port            string        `mapstructure:"port"`
	Address         string        `mapstructure:"address"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
	RateLimitMax    int           `mapstructure:"rate_limit_max"`
}

// Pinger reports whether storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the http server
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	if config.RateLimitWindow <= 0 {
		config.RateLimitWindow = time.Minute
	}
	if config.RateLimitMax <= 0 {
		config.RateLimitMax = 120
	}
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Handler builds the router: health check at /healthz and the admin API
// under /api/admin behind auth and rate limiting.
func (s *Server) Handler(ctx context.Context, adminServer *admin.Server, authServer *auth.Server, db Pinger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(cmw.ClientIP)
	r.Use(log.RequestLogger(slog.Default()))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return isOriginAllowed(origin, s.c.AllowedOrigins)
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", auth.AuthHeaderKey},
		MaxAge:         300,
	}))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			slog.Default().ErrorContext(r.Context(), "health check failed",
				slog.String("err", err.Error()),
			)
			_ = render.Render(w, r, dto.ErrUnavailable(err))
			return
		}
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	limiter := ratelimit.NewLimiter(ctx, s.c.RateLimitWindow, s.c.RateLimitMax)
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(limiter.Middleware(cmw.RateLimitKey))
		r.Use(authServer.WithAuth)
		r.Mount("/", adminServer.Routes())
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = render.Render(w, r, dto.ErrNotFound)
	})

	return r
}

// Start starts the server
func (s *Server) Start(ctx context.Context, adminServer *admin.Server, authServer *auth.Server, db Pinger) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           h2c.NewHandler(s.Handler(ctx, adminServer, authServer, db), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Default().InfoContext(ctx, "grbpwr-deals new listener",
			slog.String("addr", fmt.Sprintf("http://%v", listenerAddr)),
		)
		err := s.hs.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		close(s.done)
	}()

	return nil
}

// Stop shuts the server down, waiting for in-flight requests until ctx is done.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	// Always allow localhost origins
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "https://localhost:") {
		return true
	}
	return slices.Contains(allowedOrigins, origin)
}
