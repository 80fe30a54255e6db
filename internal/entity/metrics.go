package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FieldCount is one group produced by a group-by query. Value is the
// stringified field value: "true"/"false" for flags, the raw string for
// enums and "" for missing values.
type FieldCount struct {
	Value string `db:"value"`
	Count int64  `db:"cnt"`
}

// MonthCount is the number of records created in a calendar month (UTC).
type MonthCount struct {
	Year  int        `db:"y" json:"year"`
	Month time.Month `db:"m" json:"month"`
	Count int64      `db:"cnt" json:"count"`
}

// Start returns the first instant of the month in UTC.
func (mc MonthCount) Start() time.Time {
	return time.Date(mc.Year, mc.Month, 1, 0, 0, 0, 0, time.UTC)
}

// RankedValue is a record returned by a top-N query.
type RankedValue struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Value int64  `db:"value"`
}

// SummaryReport holds the dashboard headline counters.
type SummaryReport struct {
	TotalUsers     int64
	ActiveUsers    int64
	TotalStores    int64
	ActiveStores   int64
	TotalCoupons   int64
	ActiveCoupons  int64
	ExpiredCoupons int64
	Categories     int64
	Roles          int64
}

// Counters returns the summary as a name to value mapping.
func (s SummaryReport) Counters() map[string]int64 {
	return map[string]int64{
		"totalUsers":     s.TotalUsers,
		"activeUsers":    s.ActiveUsers,
		"totalStores":    s.TotalStores,
		"activeStores":   s.ActiveStores,
		"totalCoupons":   s.TotalCoupons,
		"activeCoupons":  s.ActiveCoupons,
		"expiredCoupons": s.ExpiredCoupons,
		"categories":     s.Categories,
		"roles":          s.Roles,
	}
}

// TrendSeries holds monthly creation counts per entity, oldest month first.
// Every series has exactly Months entries ending at the current month.
type TrendSeries struct {
	Months  int
	Users   []MonthCount
	Stores  []MonthCount
	Coupons []MonthCount
}

// LabelCount is a grouped count with a human readable label and its share
// of the total in percent.
type LabelCount struct {
	Label string
	Count int64
	Share decimal.Decimal
}

// TopEntry is a store ranked by coupon usage.
type TopEntry struct {
	Name       string
	UsageCount int64
}

// Result carries either a report value or the error that prevented computing it.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the result holds a value.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// NewResult wraps a (value, error) pair.
func NewResult[T any](v T, err error) Result[T] {
	return Result[T]{Value: v, Err: err}
}

// DashboardParams tunes a whole-dashboard request. Zero values select defaults.
type DashboardParams struct {
	TrendMonths    int
	TopStoresLimit int
}

// DashboardReport is the outcome of fetching every report at once.
// Each report fails independently.
type DashboardReport struct {
	Summary         Result[*SummaryReport]
	Trends          Result[*TrendSeries]
	CouponsByStatus Result[[]LabelCount]
	CouponsByType   Result[[]LabelCount]
	StoreStatus     Result[[]LabelCount]
	TopStores       Result[[]TopEntry]
}

// UsageResetResult describes one Reset Job run.
type UsageResetResult struct {
	RunID    string
	Affected int64
	Skipped  bool
	Started  time.Time
	Duration time.Duration
}

// SchedulerState is the lifecycle state of the usage reset scheduler.
type SchedulerState int32

const (
	SchedulerStopped SchedulerState = iota
	SchedulerRunning
)

func (s SchedulerState) String() string {
	if s == SchedulerRunning {
		return "running"
	}
	return "stopped"
}
