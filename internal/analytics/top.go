package analytics

import (
	"context"
	"fmt"

	"github.com/jekabolt/grbpwr-deals/internal/entity"
)

// TopStoresByUsage ranks stores by total coupon uses, highest first.
// Ties keep the storage order.
func (e *Engine) TopStoresByUsage(ctx context.Context, limit int) ([]entity.TopEntry, error) {
	limit = e.topStoresLimit(limit)
	ranked, err := e.metrics.TopNByField(ctx, entity.CollectionStores, entity.FieldTotalCouponUsedTimes, limit, entity.Descending)
	if err != nil {
		return nil, fmt.Errorf("top stores by usage: %w", err)
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	res := make([]entity.TopEntry, 0, len(ranked))
	for _, r := range ranked {
		name := r.Name
		if name == "" {
			name = r.ID
		}
		res = append(res, entity.TopEntry{Name: name, UsageCount: r.Value})
	}
	return res, nil
}
