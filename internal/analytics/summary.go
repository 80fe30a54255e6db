package analytics

import (
	"context"
	"fmt"

	"github.com/jekabolt/grbpwr-deals/internal/entity"
	"golang.org/x/sync/errgroup"
)

type counter struct {
	dst    *int64
	c      entity.Collection
	filter entity.Filter
}

// Summary returns the nine headline counters. The counts run concurrently.
func (e *Engine) Summary(ctx context.Context) (*entity.SummaryReport, error) {
	s := &entity.SummaryReport{}
	counters := []counter{
		{&s.TotalUsers, entity.CollectionUsers, nil},
		{&s.ActiveUsers, entity.CollectionUsers, entity.Eq(entity.FieldIsActive, true)},
		{&s.TotalStores, entity.CollectionStores, nil},
		{&s.ActiveStores, entity.CollectionStores, entity.Eq(entity.FieldIsActive, true)},
		{&s.TotalCoupons, entity.CollectionCoupons, nil},
		{&s.ActiveCoupons, entity.CollectionCoupons, entity.Eq(entity.FieldStatus, entity.CouponStatusActive)},
		{&s.ExpiredCoupons, entity.CollectionCoupons, entity.Eq(entity.FieldStatus, entity.CouponStatusExpired)},
		{&s.Categories, entity.CollectionCategories, nil},
		{&s.Roles, entity.CollectionRoles, nil},
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, cnt := range counters {
		cnt := cnt
		g.Go(func() error {
			n, err := e.metrics.Count(ctx, cnt.c, cnt.filter)
			if err != nil {
				return fmt.Errorf("count %s: %w", cnt.c, err)
			}
			*cnt.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	reconcile(s)
	return s, nil
}

// reconcile keeps subset counters within their totals. Counts are issued
// separately and a write between them can make a subset overtake its total.
func reconcile(s *entity.SummaryReport) {
	s.TotalUsers = max(s.TotalUsers, s.ActiveUsers)
	s.TotalStores = max(s.TotalStores, s.ActiveStores)
	s.TotalCoupons = max(s.TotalCoupons, s.ActiveCoupons+s.ExpiredCoupons)
}
