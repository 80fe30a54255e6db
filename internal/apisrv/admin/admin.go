package admin

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/jekabolt/grbpwr-deals/internal/apisrv/auth"
	"github.com/jekabolt/grbpwr-deals/internal/dependency"
	"github.com/jekabolt/grbpwr-deals/internal/dto"
	"github.com/jekabolt/grbpwr-deals/internal/entity"
	gerr "github.com/jekabolt/grbpwr-deals/internal/errors"
)

// Server implements handlers for admin.
type Server struct {
	dashboard dependency.Dashboard
	resetter  dependency.UsageResetter
	scheduler dependency.Scheduler
	maxMonths int
}

// New creates a new server with admin handlers. Trend windows longer than
// maxTrendMonths are rejected, zero disables the bound.
func New(d dependency.Dashboard, r dependency.UsageResetter, s dependency.Scheduler, maxTrendMonths int) *Server {
	return &Server{
		dashboard: d,
		resetter:  r,
		scheduler: s,
		maxMonths: maxTrendMonths,
	}
}

// Routes returns the admin router, mounted under /api/admin behind auth.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", s.GetDashboard)
		r.Get("/summary", s.GetSummary)
		r.Get("/trends", s.GetMonthlyTrends)
		r.Get("/coupons/status", s.GetCouponsByStatus)
		r.Get("/coupons/type", s.GetCouponsByType)
		r.Get("/stores/status", s.GetStoreStatus)
		r.Get("/stores/top", s.GetTopStores)
	})
	r.Route("/usage-reset", func(r chi.Router) {
		r.Get("/scheduler", s.GetScheduler)
		r.Post("/scheduler/start", s.StartScheduler)
		r.Post("/scheduler/stop", s.StopScheduler)
		r.Post("/run", s.RunUsageReset)
	})
	return r
}

// intParam reads an optional integer query parameter. Missing means zero,
// which selects the report default.
func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if err := validation.Validate(raw, is.Int); err != nil {
		return 0, fmt.Errorf("%w: %s %v", gerr.ErrInvalidArgument, name, err)
	}
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is out of range", gerr.ErrInvalidArgument, name)
	}
	return n, nil
}

// monthsParam reads the trend window, rejecting windows over the configured bound.
func (s *Server) monthsParam(r *http.Request) (int, error) {
	months, err := intParam(r, "months")
	if err != nil {
		return 0, err
	}
	if s.maxMonths > 0 && months > s.maxMonths {
		return 0, fmt.Errorf("%w: months must be at most %d", gerr.ErrInvalidArgument, s.maxMonths)
	}
	return months, nil
}

func renderError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Default().ErrorContext(r.Context(), msg,
		slog.String("err", err.Error()),
		slog.String("path", r.URL.Path),
	)
	_ = render.Render(w, r, dto.ErrFromError(err))
}

// GetDashboard returns every report. Failed reports come back with empty
// data and their error, the response itself is always 200.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	months, err := s.monthsParam(r)
	if err != nil {
		renderError(w, r, "invalid dashboard request", err)
		return
	}
	limit, err := intParam(r, "limit")
	if err != nil {
		renderError(w, r, "invalid dashboard request", err)
		return
	}
	rep := s.dashboard.Dashboard(r.Context(), entity.DashboardParams{
		TrendMonths:    months,
		TopStoresLimit: limit,
	})
	render.JSON(w, r, dto.ConvertEntityDashboardToJSON(rep))
}

func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.dashboard.Summary(r.Context())
	if err != nil {
		renderError(w, r, "can't get dashboard summary", err)
		return
	}
	render.JSON(w, r, dto.ConvertEntitySummaryToJSON(sum))
}

func (s *Server) GetMonthlyTrends(w http.ResponseWriter, r *http.Request) {
	months, err := s.monthsParam(r)
	if err != nil {
		renderError(w, r, "invalid trends request", err)
		return
	}
	ts, err := s.dashboard.MonthlyTrends(r.Context(), months)
	if err != nil {
		renderError(w, r, "can't get monthly trends", err)
		return
	}
	render.JSON(w, r, dto.ConvertEntityTrendsToJSON(ts))
}

func (s *Server) groupedCounts(name string, fn func(context.Context) ([]entity.LabelCount, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := fn(r.Context())
		if err != nil {
			renderError(w, r, "can't get "+name, err)
			return
		}
		render.JSON(w, r, dto.ConvertEntityLabelCountsToJSON(res))
	}
}

func (s *Server) GetCouponsByStatus(w http.ResponseWriter, r *http.Request) {
	s.groupedCounts("coupons by status", s.dashboard.CouponsByStatus)(w, r)
}

func (s *Server) GetCouponsByType(w http.ResponseWriter, r *http.Request) {
	s.groupedCounts("coupons by type", s.dashboard.CouponsByType)(w, r)
}

func (s *Server) GetStoreStatus(w http.ResponseWriter, r *http.Request) {
	s.groupedCounts("store status counts", s.dashboard.StoreStatusCounts)(w, r)
}

func (s *Server) GetTopStores(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		renderError(w, r, "invalid top stores request", err)
		return
	}
	top, err := s.dashboard.TopStoresByUsage(r.Context(), limit)
	if err != nil {
		renderError(w, r, "can't get top stores", err)
		return
	}
	render.JSON(w, r, dto.ConvertEntityTopEntriesToJSON(top))
}

func (s *Server) schedulerStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, dto.ConvertSchedulerStatusToJSON(s.scheduler.State(), s.scheduler.NextRun()))
}

func (s *Server) GetScheduler(w http.ResponseWriter, r *http.Request) {
	s.schedulerStatus(w, r)
}

// StartScheduler starts the daily reset. The scheduler outlives the request
// and is stopped on shutdown.
func (s *Server) StartScheduler(w http.ResponseWriter, r *http.Request) {
	s.scheduler.Start(context.WithoutCancel(r.Context()))
	slog.Default().InfoContext(r.Context(), "usage reset scheduler start requested",
		slog.String("by", auth.Subject(r.Context())),
	)
	s.schedulerStatus(w, r)
}

func (s *Server) StopScheduler(w http.ResponseWriter, r *http.Request) {
	s.scheduler.Stop()
	slog.Default().InfoContext(r.Context(), "usage reset scheduler stop requested",
		slog.String("by", auth.Subject(r.Context())),
	)
	s.schedulerStatus(w, r)
}

// RunUsageReset resets coupon usage immediately, outside the schedule.
func (s *Server) RunUsageReset(w http.ResponseWriter, r *http.Request) {
	res, err := s.resetter.Run(r.Context())
	if err != nil {
		renderError(w, r, "can't reset coupon usage", err)
		return
	}
	slog.Default().InfoContext(r.Context(), "manual coupon usage reset",
		slog.String("run_id", res.RunID),
		slog.String("by", auth.Subject(r.Context())),
	)
	render.JSON(w, r, dto.ConvertEntityUsageResetToJSON(res))
}
