package store

import (
	"context"

	"github.com/jekabolt/grbpwr-deals/internal/dependency"
	gerr "github.com/jekabolt/grbpwr-deals/internal/errors"
)

type couponStore struct {
	*MYSQLStore
}

// Coupons returns an object implementing Coupons interface
func (ms *MYSQLStore) Coupons() dependency.Coupons {
	return &couponStore{MYSQLStore: ms}
}

// ResetUsage zeroes the uses counter of every coupon. Rows already at zero
// are not counted as affected.
func (ms *couponStore) ResetUsage(ctx context.Context) (int64, error) {
	n, err := execNamed(ctx, ms.DB(), `UPDATE coupons SET uses = 0 WHERE uses <> 0`, nil)
	if err != nil {
		return 0, gerr.Storage("reset coupon usage", err)
	}
	return n, nil
}
