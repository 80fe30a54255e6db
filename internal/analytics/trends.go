package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jekabolt/grbpwr-deals/internal/entity"
	"golang.org/x/sync/errgroup"
)

// MonthlyTrends returns creation counts for users, stores and coupons over
// the last months calendar months, current month included. Every series has
// exactly months entries, oldest first, with empty months set to zero.
func (e *Engine) MonthlyTrends(ctx context.Context, months int) (*entity.TrendSeries, error) {
	months = e.trendMonths(months)
	since := windowStart(e.now(), months)

	ts := &entity.TrendSeries{Months: months}
	series := []struct {
		dst *[]entity.MonthCount
		c   entity.Collection
	}{
		{&ts.Users, entity.CollectionUsers},
		{&ts.Stores, entity.CollectionStores},
		{&ts.Coupons, entity.CollectionCoupons},
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, s := range series {
		s := s
		g.Go(func() error {
			buckets, err := e.metrics.BucketByMonth(ctx, s.c, since)
			if err != nil {
				return fmt.Errorf("bucket %s by month: %w", s.c, err)
			}
			*s.dst = fillMonthGaps(buckets, since, months)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("monthly trends: %w", err)
	}
	return ts, nil
}

// monthStart truncates t to the first instant of its month in UTC.
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// windowStart is the first instant of the oldest month in a window of
// months calendar months ending with the month of now.
func windowStart(now time.Time, months int) time.Time {
	return monthStart(now).AddDate(0, -(months - 1), 0)
}

// fillMonthGaps returns months consecutive entries starting at since, taking
// counts from buckets and zero elsewhere. Buckets outside the window are dropped.
func fillMonthGaps(buckets []entity.MonthCount, since time.Time, months int) []entity.MonthCount {
	byMonth := make(map[time.Time]int64, len(buckets))
	for _, b := range buckets {
		byMonth[b.Start()] += b.Count
	}

	res := make([]entity.MonthCount, 0, months)
	for i, t := 0, since; i < months; i, t = i+1, t.AddDate(0, 1, 0) {
		res = append(res, entity.MonthCount{
			Year:  t.Year(),
			Month: t.Month(),
			Count: byMonth[t],
		})
	}
	return res
}
