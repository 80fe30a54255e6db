package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-deals/internal/apisrv/admin"
	"github.com/jekabolt/grbpwr-deals/internal/apisrv/auth"
	"github.com/jekabolt/grbpwr-deals/internal/dependency/mocks"
	"github.com/jekabolt/grbpwr-deals/internal/entity"
	gerr "github.com/jekabolt/grbpwr-deals/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	h         http.Handler
	token     string
	repo      *mocks.Repository
	dashboard *mocks.Dashboard
}

func newFixture(t *testing.T, rateMax int) *fixture {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	authServer, err := auth.New(&auth.Config{JWTSecret: "test-secret", JWTTTL: "1h"})
	require.NoError(t, err)
	token, err := authServer.IssueToken("tester")
	require.NoError(t, err)

	f := &fixture{
		token:     token,
		repo:      mocks.NewRepository(t),
		dashboard: mocks.NewDashboard(t),
	}
	adminServer := admin.New(f.dashboard, mocks.NewUsageResetter(t), mocks.NewScheduler(t), 36)
	s := New(&Config{
		AllowedOrigins:  []string{"https://admin.example.com"},
		RateLimitWindow: time.Minute,
		RateLimitMax:    rateMax,
	})
	f.h = s.Handler(ctx, adminServer, authServer, f.repo)
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.h.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) authed(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(auth.AuthHeaderKey, "Bearer "+f.token)
	return req
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, 10)
	f.repo.On("Ping", mock.Anything).Return(nil).Once()
	f.repo.On("Ping", mock.Anything).Return(gerr.Storage("ping", errors.New("down"))).Once()

	rec := f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAdminRequiresToken(t *testing.T) {
	f := newFixture(t, 10)
	f.dashboard.On("Summary", mock.Anything).Return(&entity.SummaryReport{Roles: 2}, nil)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/admin/dashboard/summary", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(f.authed(http.MethodGet, "/api/admin/dashboard/summary"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"roles":2`)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestAdminRateLimit(t *testing.T) {
	f := newFixture(t, 1)
	f.dashboard.On("Summary", mock.Anything).Return(&entity.SummaryReport{}, nil).Once()

	rec := f.do(f.authed(http.MethodGet, "/api/admin/dashboard/summary"))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(f.authed(http.MethodGet, "/api/admin/dashboard/summary"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestCORS(t *testing.T) {
	f := newFixture(t, 10)

	req := httptest.NewRequest(http.MethodOptions, "/api/admin/dashboard", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := f.do(req)
	assert.Equal(t, "https://admin.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/admin/dashboard", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = f.do(req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotFound(t *testing.T) {
	f := newFixture(t, 10)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIsOriginAllowed(t *testing.T) {
	allowed := []string{"https://admin.example.com"}
	assert.True(t, isOriginAllowed("http://localhost:3000", allowed))
	assert.True(t, isOriginAllowed("https://admin.example.com", allowed))
	assert.False(t, isOriginAllowed("https://example.com", allowed))
}
