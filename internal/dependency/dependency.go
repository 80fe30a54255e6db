package dependency

import (
	"context"
	"time"

	"github.com/jekabolt/grbpwr-deals/internal/entity"
)

//go:generate mockery --case underscore --all --output=./mocks
type (
	// Metrics is the read-only data access used by the dashboard.
	// Every method may fail with gerr.ErrStorageUnavailable. Unknown
	// collection/field pairs yield zero or empty results, never an error.
	Metrics interface {
		// Count returns the number of records matching every condition of filter.
		Count(ctx context.Context, c entity.Collection, filter entity.Filter) (int64, error)
		// GroupByField returns every distinct value of field with its count, in no particular order.
		GroupByField(ctx context.Context, c entity.Collection, field entity.Field) ([]entity.FieldCount, error)
		// BucketByMonth counts records created at or after since per calendar month (UTC),
		// ascending. Months without records are absent.
		BucketByMonth(ctx context.Context, c entity.Collection, since time.Time) ([]entity.MonthCount, error)
		// TopNByField returns up to limit records ordered by field.
		TopNByField(ctx context.Context, c entity.Collection, field entity.Field, limit int, dir entity.SortDirection) ([]entity.RankedValue, error)
	}

	// Coupons exposes the mutation used by the usage reset job.
	Coupons interface {
		// ResetUsage sets uses to zero on every coupon and returns how many records changed.
		ResetUsage(ctx context.Context) (int64, error)
	}

	Repository interface {
		Metrics() Metrics
		Coupons() Coupons
		Ping(ctx context.Context) error
		Close()
	}

	// Locker grants a named lease to a single holder until ttl elapses.
	Locker interface {
		Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	}

	// Dashboard computes admin dashboard reports.
	Dashboard interface {
		Summary(ctx context.Context) (*entity.SummaryReport, error)
		MonthlyTrends(ctx context.Context, months int) (*entity.TrendSeries, error)
		CouponsByStatus(ctx context.Context) ([]entity.LabelCount, error)
		CouponsByType(ctx context.Context) ([]entity.LabelCount, error)
		StoreStatusCounts(ctx context.Context) ([]entity.LabelCount, error)
		TopStoresByUsage(ctx context.Context, limit int) ([]entity.TopEntry, error)
		Dashboard(ctx context.Context, p entity.DashboardParams) *entity.DashboardReport
	}

	// UsageResetter runs the coupon usage reset on demand.
	UsageResetter interface {
		Run(ctx context.Context) (*entity.UsageResetResult, error)
	}

	// Scheduler controls the daily usage reset.
	Scheduler interface {
		Start(ctx context.Context)
		Stop()
		State() entity.SchedulerState
		NextRun() time.Time
	}
)
