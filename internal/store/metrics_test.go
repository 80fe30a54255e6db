package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jekabolt/grbpwr-deals/internal/entity"
	gerr "github.com/jekabolt/grbpwr-deals/internal/errors"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*MYSQLStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ms := newStore(context.Background(), sqlx.NewDb(db, "mysql"))
	t.Cleanup(ms.Close)
	return ms, mock
}

func TestCount(t *testing.T) {
	ctx := context.Background()

	t.Run("no filter counts everything", func(t *testing.T) {
		ms, mock := newMockStore(t)
		mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM coupons$`).
			WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(3))

		n, err := ms.Metrics().Count(ctx, entity.CollectionCoupons, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("equality filter", func(t *testing.T) {
		ms, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM coupons WHERE status = ?`)).
			WithArgs("expired").
			WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))

		n, err := ms.Metrics().Count(ctx, entity.CollectionCoupons, entity.Eq(entity.FieldStatus, entity.CouponStatusExpired))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bool filter", func(t *testing.T) {
		ms, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE is_active = ?`)).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(7))

		n, err := ms.Metrics().Count(ctx, entity.CollectionUsers, entity.Eq(entity.FieldIsActive, true))
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)
	})

	t.Run("unknown field counts zero without querying", func(t *testing.T) {
		ms, mock := newMockStore(t)

		n, err := ms.Metrics().Count(ctx, entity.CollectionRoles, entity.Eq(entity.FieldIsActive, true))
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mistyped value counts zero", func(t *testing.T) {
		ms, mock := newMockStore(t)

		n, err := ms.Metrics().Count(ctx, entity.CollectionStores, entity.Eq(entity.FieldIsActive, "yes"))
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown collection counts zero", func(t *testing.T) {
		ms, _ := newMockStore(t)

		n, err := ms.Metrics().Count(ctx, entity.Collection("blogs"), nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("driver error is storage unavailable", func(t *testing.T) {
		ms, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT COUNT`).WillReturnError(errors.New("connection refused"))

		_, err := ms.Metrics().Count(ctx, entity.CollectionUsers, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, gerr.ErrStorageUnavailable)
	})
}

func TestGroupByField(t *testing.T) {
	ctx := context.Background()

	t.Run("bool values are normalized", func(t *testing.T) {
		ms, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT CAST(is_active AS CHAR) AS value, COUNT(*) AS cnt FROM stores GROUP BY is_active`)).
			WillReturnRows(sqlmock.NewRows([]string{"value", "cnt"}).
				AddRow("1", 5).
				AddRow("0", 2))

		groups, err := ms.Metrics().GroupByField(ctx, entity.CollectionStores, entity.FieldIsActive)
		require.NoError(t, err)
		assert.ElementsMatch(t, []entity.FieldCount{
			{Value: "true", Count: 5},
			{Value: "false", Count: 2},
		}, groups)
	})

	t.Run("null values keep their own group", func(t *testing.T) {
		ms, mock := newMockStore(t)
		mock.ExpectQuery(`GROUP BY coupon_type`).
			WillReturnRows(sqlmock.NewRows([]string{"value", "cnt"}).
				AddRow("deal", 4).
				AddRow(nil, 1))

		groups, err := ms.Metrics().GroupByField(ctx, entity.CollectionCoupons, entity.FieldCouponType)
		require.NoError(t, err)
		assert.Equal(t, []entity.FieldCount{
			{Value: "deal", Count: 4},
			{Value: "", Count: 1},
		}, groups)
	})

	t.Run("unknown field is empty", func(t *testing.T) {
		ms, mock := newMockStore(t)

		groups, err := ms.Metrics().GroupByField(ctx, entity.CollectionUsers, entity.FieldStatus)
		require.NoError(t, err)
		assert.Empty(t, groups)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBucketByMonth(t *testing.T) {
	ms, mock := newMockStore(t)
	since := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT YEAR(created_at) AS y, MONTH(created_at) AS m, COUNT(*) AS cnt FROM coupons WHERE created_at >= ? GROUP BY y, m ORDER BY y, m`)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"y", "m", "cnt"}).
			AddRow(2026, 8, 2).
			AddRow(2026, 10, 4))

	buckets, err := ms.Metrics().BucketByMonth(context.Background(), entity.CollectionCoupons, since)
	require.NoError(t, err)
	assert.Equal(t, []entity.MonthCount{
		{Year: 2026, Month: time.August, Count: 2},
		{Year: 2026, Month: time.October, Count: 4},
	}, buckets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopNByField(t *testing.T) {
	ctx := context.Background()

	t.Run("descending with limit", func(t *testing.T) {
		ms, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT CAST(id AS CHAR) AS id, COALESCE(name, '') AS name, total_coupon_used_times AS value FROM stores ORDER BY total_coupon_used_times DESC LIMIT ?`)).
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "value"}).
				AddRow("3", "Acme", 40).
				AddRow("1", "Globex", 12))

		top, err := ms.Metrics().TopNByField(ctx, entity.CollectionStores, entity.FieldTotalCouponUsedTimes, 2, entity.Descending)
		require.NoError(t, err)
		assert.Equal(t, []entity.RankedValue{
			{ID: "3", Name: "Acme", Value: 40},
			{ID: "1", Name: "Globex", Value: 12},
		}, top)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non numeric field is empty", func(t *testing.T) {
		ms, mock := newMockStore(t)

		top, err := ms.Metrics().TopNByField(ctx, entity.CollectionStores, entity.FieldName, 5, entity.Descending)
		require.NoError(t, err)
		assert.Empty(t, top)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero limit is empty", func(t *testing.T) {
		ms, _ := newMockStore(t)

		top, err := ms.Metrics().TopNByField(ctx, entity.CollectionStores, entity.FieldTotalCouponUsedTimes, 0, entity.Descending)
		require.NoError(t, err)
		assert.Empty(t, top)
	})
}

func TestResetUsage(t *testing.T) {
	ctx := context.Background()

	t.Run("returns changed rows", func(t *testing.T) {
		ms, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE coupons SET uses = 0 WHERE uses <> 0`)).
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := ms.Coupons().ResetUsage(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second run changes nothing", func(t *testing.T) {
		ms, mock := newMockStore(t)
		mock.ExpectExec(`UPDATE coupons`).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`UPDATE coupons`).WillReturnResult(sqlmock.NewResult(0, 0))

		first, err := ms.Coupons().ResetUsage(ctx)
		require.NoError(t, err)
		second, err := ms.Coupons().ResetUsage(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), first)
		assert.Zero(t, second)
	})

	t.Run("driver error", func(t *testing.T) {
		ms, mock := newMockStore(t)
		mock.ExpectExec(`UPDATE coupons`).WillReturnError(errors.New("lock wait timeout"))

		_, err := ms.Coupons().ResetUsage(ctx)
		assert.ErrorIs(t, err, gerr.ErrStorageUnavailable)
	})
}
