package analytics

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/jekabolt/grbpwr-deals/internal/entity"
)

// Dashboard computes every report concurrently. Each report gets its own
// timeout and fails on its own; the returned report is never nil.
func (e *Engine) Dashboard(ctx context.Context, p entity.DashboardParams) *entity.DashboardReport {
	r := &entity.DashboardReport{}
	t := e.c.ReportTimeout

	var wg sync.WaitGroup
	spawn := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	spawn(func() { r.Summary = runReport(ctx, t, "summary", e.Summary) })
	spawn(func() {
		r.Trends = runReport(ctx, t, "trends", func(ctx context.Context) (*entity.TrendSeries, error) {
			return e.MonthlyTrends(ctx, p.TrendMonths)
		})
	})
	spawn(func() { r.CouponsByStatus = runReport(ctx, t, "coupons_by_status", e.CouponsByStatus) })
	spawn(func() { r.CouponsByType = runReport(ctx, t, "coupons_by_type", e.CouponsByType) })
	spawn(func() { r.StoreStatus = runReport(ctx, t, "store_status", e.StoreStatusCounts) })
	spawn(func() {
		r.TopStores = runReport(ctx, t, "top_stores", func(ctx context.Context) ([]entity.TopEntry, error) {
			return e.TopStoresByUsage(ctx, p.TopStoresLimit)
		})
	})

	wg.Wait()
	return r
}

func runReport[T any](ctx context.Context, timeout time.Duration, name string, fn func(context.Context) (T, error)) entity.Result[T] {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	v, err := fn(ctx)
	if err != nil {
		slog.Default().WarnContext(ctx, "dashboard report failed",
			slog.String("report", name),
			slog.String("err", err.Error()),
		)
	}
	return entity.NewResult(v, err)
}
