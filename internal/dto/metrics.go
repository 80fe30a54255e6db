package dto

import (
	"fmt"
	"time"

	"github.com/jekabolt/grbpwr-deals/internal/entity"
	"github.com/shopspring/decimal"
)

type Summary struct {
	TotalUsers     int64 `json:"totalUsers"`
	ActiveUsers    int64 `json:"activeUsers"`
	TotalStores    int64 `json:"totalStores"`
	ActiveStores   int64 `json:"activeStores"`
	TotalCoupons   int64 `json:"totalCoupons"`
	ActiveCoupons  int64 `json:"activeCoupons"`
	ExpiredCoupons int64 `json:"expiredCoupons"`
	Categories     int64 `json:"categories"`
	Roles          int64 `json:"roles"`
}

type MonthPoint struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type Trends struct {
	Months  int          `json:"months"`
	Users   []MonthPoint `json:"users"`
	Stores  []MonthPoint `json:"stores"`
	Coupons []MonthPoint `json:"coupons"`
}

type GroupedCount struct {
	Label string          `json:"label"`
	Count int64           `json:"count"`
	Share decimal.Decimal `json:"share"`
}

type TopStore struct {
	Name       string `json:"name"`
	UsageCount int64  `json:"usageCount"`
}

// Envelope carries one report of the dashboard. Data holds the zero value
// of the report when Error is set.
type Envelope[T any] struct {
	Data  T      `json:"data"`
	Error string `json:"error,omitempty"`
}

type Dashboard struct {
	Summary         Envelope[Summary]        `json:"summary"`
	Trends          Envelope[Trends]         `json:"trends"`
	CouponsByStatus Envelope[[]GroupedCount] `json:"couponsByStatus"`
	CouponsByType   Envelope[[]GroupedCount] `json:"couponsByType"`
	StoreStatus     Envelope[[]GroupedCount] `json:"storeStatus"`
	TopStores       Envelope[[]TopStore]     `json:"topStores"`
}

type UsageReset struct {
	RunID      string    `json:"runId"`
	Affected   int64     `json:"affected"`
	Skipped    bool      `json:"skipped"`
	StartedAt  time.Time `json:"startedAt"`
	DurationMs int64     `json:"durationMs"`
}

type SchedulerStatus struct {
	State   string     `json:"state"`
	NextRun *time.Time `json:"nextRun,omitempty"`
}

func ConvertEntitySummaryToJSON(s *entity.SummaryReport) Summary {
	if s == nil {
		return Summary{}
	}
	return Summary{
		TotalUsers:     s.TotalUsers,
		ActiveUsers:    s.ActiveUsers,
		TotalStores:    s.TotalStores,
		ActiveStores:   s.ActiveStores,
		TotalCoupons:   s.TotalCoupons,
		ActiveCoupons:  s.ActiveCoupons,
		ExpiredCoupons: s.ExpiredCoupons,
		Categories:     s.Categories,
		Roles:          s.Roles,
	}
}

func ConvertEntityTrendsToJSON(ts *entity.TrendSeries) Trends {
	if ts == nil {
		return Trends{Users: []MonthPoint{}, Stores: []MonthPoint{}, Coupons: []MonthPoint{}}
	}
	return Trends{
		Months:  ts.Months,
		Users:   monthPointsToJSON(ts.Users),
		Stores:  monthPointsToJSON(ts.Stores),
		Coupons: monthPointsToJSON(ts.Coupons),
	}
}

func monthPointsToJSON(series []entity.MonthCount) []MonthPoint {
	res := make([]MonthPoint, 0, len(series))
	for _, mc := range series {
		res = append(res, MonthPoint{
			Year:  mc.Year,
			Month: int(mc.Month),
			Label: fmt.Sprintf("%04d-%02d", mc.Year, int(mc.Month)),
			Count: mc.Count,
		})
	}
	return res
}

func ConvertEntityLabelCountsToJSON(lcs []entity.LabelCount) []GroupedCount {
	res := make([]GroupedCount, 0, len(lcs))
	for _, lc := range lcs {
		res = append(res, GroupedCount{Label: lc.Label, Count: lc.Count, Share: lc.Share})
	}
	return res
}

func ConvertEntityTopEntriesToJSON(tes []entity.TopEntry) []TopStore {
	res := make([]TopStore, 0, len(tes))
	for _, te := range tes {
		res = append(res, TopStore{Name: te.Name, UsageCount: te.UsageCount})
	}
	return res
}

func envelope[T, V any](r entity.Result[T], convert func(T) V) Envelope[V] {
	var zero T
	if !r.OK() {
		return Envelope[V]{Data: convert(zero), Error: r.Err.Error()}
	}
	return Envelope[V]{Data: convert(r.Value)}
}

// ConvertEntityDashboardToJSON keeps failed reports in place with empty data
// and the error text.
func ConvertEntityDashboardToJSON(d *entity.DashboardReport) Dashboard {
	return Dashboard{
		Summary:         envelope(d.Summary, ConvertEntitySummaryToJSON),
		Trends:          envelope(d.Trends, ConvertEntityTrendsToJSON),
		CouponsByStatus: envelope(d.CouponsByStatus, ConvertEntityLabelCountsToJSON),
		CouponsByType:   envelope(d.CouponsByType, ConvertEntityLabelCountsToJSON),
		StoreStatus:     envelope(d.StoreStatus, ConvertEntityLabelCountsToJSON),
		TopStores:       envelope(d.TopStores, ConvertEntityTopEntriesToJSON),
	}
}

func ConvertEntityUsageResetToJSON(r *entity.UsageResetResult) UsageReset {
	return UsageReset{
		RunID:      r.RunID,
		Affected:   r.Affected,
		Skipped:    r.Skipped,
		StartedAt:  r.Started.UTC(),
		DurationMs: r.Duration.Milliseconds(),
	}
}

func ConvertSchedulerStatusToJSON(state entity.SchedulerState, next time.Time) SchedulerStatus {
	s := SchedulerStatus{State: state.String()}
	if !next.IsZero() {
		n := next.UTC()
		s.NextRun = &n
	}
	return s
}
