package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-deals/internal/entity"
	gerr "github.com/jekabolt/grbpwr-deals/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockTest(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func ns(mt *mtest.T, coll string) string {
	return mt.DB.Name() + "." + coll
}

func TestCount(t *testing.T) {
	mt := newMockTest(t)
	ctx := context.Background()

	mt.Run("counts matching documents", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, "coupons"), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: int32(7)}},
		))
		s := NewWithDatabase(mt.DB)
		n, err := s.Metrics().Count(ctx, entity.CollectionCoupons, entity.Eq(entity.FieldStatus, entity.CouponStatusExpired))
		require.NoError(mt, err)
		assert.EqualValues(mt, 7, n)
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, "roles"), mtest.FirstBatch))
		s := NewWithDatabase(mt.DB)
		n, err := s.Metrics().Count(ctx, entity.CollectionRoles, nil)
		require.NoError(mt, err)
		assert.Zero(mt, n)
	})

	mt.Run("unknown field counts zero", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		n, err := s.Metrics().Count(ctx, entity.CollectionRoles, entity.Eq(entity.FieldIsActive, true))
		require.NoError(mt, err)
		assert.Zero(mt, n)
	})

	mt.Run("mistyped value counts zero", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		n, err := s.Metrics().Count(ctx, entity.CollectionUsers, entity.Eq(entity.FieldIsActive, "yes"))
		require.NoError(mt, err)
		assert.Zero(mt, n)
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))
		s := NewWithDatabase(mt.DB)
		_, err := s.Metrics().Count(ctx, entity.CollectionUsers, nil)
		require.Error(mt, err)
		assert.ErrorIs(mt, err, gerr.ErrStorageUnavailable)
	})
}

func TestGroupByField(t *testing.T) {
	mt := newMockTest(t)
	ctx := context.Background()

	mt.Run("renders group keys", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, "stores"), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: nil}, {Key: "cnt", Value: int32(1)}},
			bson.D{{Key: "_id", Value: false}, {Key: "cnt", Value: int32(2)}},
			bson.D{{Key: "_id", Value: true}, {Key: "cnt", Value: int32(5)}},
		))
		s := NewWithDatabase(mt.DB)
		res, err := s.Metrics().GroupByField(ctx, entity.CollectionStores, entity.FieldIsActive)
		require.NoError(mt, err)
		assert.Equal(mt, []entity.FieldCount{
			{Value: "", Count: 1},
			{Value: "false", Count: 2},
			{Value: "true", Count: 5},
		}, res)
	})

	mt.Run("unknown field", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		res, err := s.Metrics().GroupByField(ctx, entity.CollectionUsers, entity.FieldCouponType)
		require.NoError(mt, err)
		assert.Empty(mt, res)
	})
}

func TestBucketByMonth(t *testing.T) {
	mt := newMockTest(t)
	ctx := context.Background()

	mt.Run("decodes month buckets", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, "users"), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: bson.D{{Key: "y", Value: 2024}, {Key: "m", Value: 11}}}, {Key: "cnt", Value: int32(2)}},
			bson.D{{Key: "_id", Value: bson.D{{Key: "y", Value: 2025}, {Key: "m", Value: 1}}}, {Key: "cnt", Value: int32(4)}},
		))
		s := NewWithDatabase(mt.DB)
		since := time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)
		res, err := s.Metrics().BucketByMonth(ctx, entity.CollectionUsers, since)
		require.NoError(mt, err)
		assert.Equal(mt, []entity.MonthCount{
			{Year: 2024, Month: time.November, Count: 2},
			{Year: 2025, Month: time.January, Count: 4},
		}, res)
	})

	mt.Run("collection without timestamps", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		res, err := s.Metrics().BucketByMonth(ctx, entity.CollectionRoles, time.Now())
		require.NoError(mt, err)
		assert.Empty(mt, res)
	})
}

func TestTopNByField(t *testing.T) {
	mt := newMockTest(t)
	ctx := context.Background()

	mt.Run("ranks by usage", func(mt *mtest.T) {
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, "stores"), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "name", Value: "Acme"}, {Key: "totalCouponUsedTimes", Value: int64(40)}},
			bson.D{{Key: "_id", Value: second}, {Key: "totalCouponUsedTimes", Value: int32(12)}},
		))
		s := NewWithDatabase(mt.DB)
		res, err := s.Metrics().TopNByField(ctx, entity.CollectionStores, entity.FieldTotalCouponUsedTimes, 2, entity.Descending)
		require.NoError(mt, err)
		assert.Equal(mt, []entity.RankedValue{
			{ID: first.Hex(), Name: "Acme", Value: 40},
			{ID: second.Hex(), Name: "", Value: 12},
		}, res)
	})

	mt.Run("non numeric field", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		res, err := s.Metrics().TopNByField(ctx, entity.CollectionStores, entity.FieldName, 5, entity.Descending)
		require.NoError(mt, err)
		assert.Empty(mt, res)
	})

	mt.Run("zero limit", func(mt *mtest.T) {
		s := NewWithDatabase(mt.DB)
		res, err := s.Metrics().TopNByField(ctx, entity.CollectionStores, entity.FieldTotalCouponUsedTimes, 0, entity.Descending)
		require.NoError(mt, err)
		assert.Empty(mt, res)
	})
}

func TestResetUsage(t *testing.T) {
	mt := newMockTest(t)
	ctx := context.Background()

	mt.Run("reports modified coupons", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 2},
			bson.E{Key: "nModified", Value: 2},
		))
		s := NewWithDatabase(mt.DB)
		n, err := s.Coupons().ResetUsage(ctx)
		require.NoError(mt, err)
		assert.EqualValues(mt, 2, n)
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))
		s := NewWithDatabase(mt.DB)
		_, err := s.Coupons().ResetUsage(ctx)
		assert.ErrorIs(mt, err, gerr.ErrStorageUnavailable)
	})
}

func TestPipeline(t *testing.T) {
	p := newPipeline().
		match(bson.D{{Key: "createdAt", Value: 1}}).
		groupCount(monthOf("createdAt")).
		sortAsc("_id.y", "_id.m").
		build()

	require.Len(t, p, 3)
	assert.Equal(t, "$match", p[0][0].Key)
	assert.Equal(t, "$group", p[1][0].Key)
	assert.Equal(t, bson.D{{Key: "_id.y", Value: 1}, {Key: "_id.m", Value: 1}}, p[2][0].Value)
}
