package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-deals/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStoreStatusCounts(t *testing.T) {
	ctx := context.Background()
	e, m := newTestEngine(t, time.Now())
	m.On("GroupByField", mock.Anything, entity.CollectionStores, entity.FieldIsActive).Return([]entity.FieldCount{
		{Value: "false", Count: 1},
		{Value: "true", Count: 3},
	}, nil)

	res, err := e.StoreStatusCounts(ctx)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, LabelActive, res[0].Label)
	assert.Equal(t, int64(3), res[0].Count)
	assert.True(t, decimal.NewFromInt(75).Equal(res[0].Share))
	assert.Equal(t, LabelInactive, res[1].Label)
	assert.True(t, decimal.NewFromInt(25).Equal(res[1].Share))
}

func TestCouponsByTypeLabels(t *testing.T) {
	ctx := context.Background()
	e, m := newTestEngine(t, time.Now())
	m.On("GroupByField", mock.Anything, entity.CollectionCoupons, entity.FieldCouponType).Return([]entity.FieldCount{
		{Value: "deal", Count: 1},
		{Value: "coupon", Count: 1},
		{Value: "", Count: 1},
	}, nil)

	res, err := e.CouponsByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Coupon", "Deal", LabelUnknown}, labels(res))
	for _, r := range res {
		assert.Equal(t, "33.33", r.Share.StringFixed(2))
	}
}

func TestCouponsByStatusExhaustive(t *testing.T) {
	ctx := context.Background()
	e, m := newTestEngine(t, time.Now())
	groups := []entity.FieldCount{
		{Value: "active", Count: 12},
		{Value: "expired", Count: 5},
		{Value: "", Count: 2},
	}
	m.On("GroupByField", mock.Anything, entity.CollectionCoupons, entity.FieldStatus).Return(groups, nil)

	res, err := e.CouponsByStatus(ctx)
	require.NoError(t, err)

	var sum int64
	for _, r := range res {
		sum += r.Count
	}
	assert.Equal(t, int64(19), sum)
	assert.Equal(t, []string{"Active", "Expired", LabelUnknown}, labels(res))
}

func TestLabelGroupsMergesLabels(t *testing.T) {
	res := labelGroups([]entity.FieldCount{
		{Value: "active", Count: 1},
		{Value: "ACTIVE", Count: 2},
	})
	require.Len(t, res, 1)
	assert.Equal(t, "Active", res[0].Label)
	assert.Equal(t, int64(3), res[0].Count)
	assert.Equal(t, "100", res[0].Share.String())
}

func TestLabelGroupsEmpty(t *testing.T) {
	assert.Empty(t, labelGroups(nil))
	assert.True(t, share(0, 0).IsZero())
}

func labels(res []entity.LabelCount) []string {
	out := make([]string, 0, len(res))
	for _, r := range res {
		out = append(out, r.Label)
	}
	return out
}
