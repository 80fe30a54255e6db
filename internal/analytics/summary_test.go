package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-deals/internal/entity"
	gerr "github.com/jekabolt/grbpwr-deals/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	ctx := context.Background()
	e, m := newTestEngine(t, time.Now())

	m.On("Count", mock.Anything, entity.CollectionUsers, entity.Filter(nil)).Return(int64(10), nil)
	m.On("Count", mock.Anything, entity.CollectionUsers, entity.Eq(entity.FieldIsActive, true)).Return(int64(7), nil)
	m.On("Count", mock.Anything, entity.CollectionStores, entity.Filter(nil)).Return(int64(4), nil)
	m.On("Count", mock.Anything, entity.CollectionStores, entity.Eq(entity.FieldIsActive, true)).Return(int64(3), nil)
	m.On("Count", mock.Anything, entity.CollectionCoupons, entity.Filter(nil)).Return(int64(20), nil)
	m.On("Count", mock.Anything, entity.CollectionCoupons, entity.Eq(entity.FieldStatus, entity.CouponStatusActive)).Return(int64(15), nil)
	m.On("Count", mock.Anything, entity.CollectionCoupons, entity.Eq(entity.FieldStatus, entity.CouponStatusExpired)).Return(int64(5), nil)
	m.On("Count", mock.Anything, entity.CollectionCategories, entity.Filter(nil)).Return(int64(6), nil)
	m.On("Count", mock.Anything, entity.CollectionRoles, entity.Filter(nil)).Return(int64(2), nil)

	s, err := e.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, &entity.SummaryReport{
		TotalUsers:     10,
		ActiveUsers:    7,
		TotalStores:    4,
		ActiveStores:   3,
		TotalCoupons:   20,
		ActiveCoupons:  15,
		ExpiredCoupons: 5,
		Categories:     6,
		Roles:          2,
	}, s)
	assert.Len(t, s.Counters(), 9)
}

func TestSummaryKeepsSubsetsWithinTotals(t *testing.T) {
	s := &entity.SummaryReport{
		TotalUsers:     3,
		ActiveUsers:    4,
		TotalStores:    2,
		ActiveStores:   1,
		TotalCoupons:   5,
		ActiveCoupons:  4,
		ExpiredCoupons: 2,
	}
	reconcile(s)
	assert.Equal(t, int64(4), s.TotalUsers)
	assert.Equal(t, int64(2), s.TotalStores)
	assert.Equal(t, int64(6), s.TotalCoupons)
}

func TestSummaryError(t *testing.T) {
	ctx := context.Background()
	e, m := newTestEngine(t, time.Now())
	m.On("Count", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), gerr.Storage("count", errors.New("down"))).Maybe()

	s, err := e.Summary(ctx)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, gerr.ErrStorageUnavailable)
}
