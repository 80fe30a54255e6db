package docstore

import (
	"context"

	"github.com/jekabolt/grbpwr-deals/internal/dependency"
	"github.com/jekabolt/grbpwr-deals/internal/entity"
	gerr "github.com/jekabolt/grbpwr-deals/internal/errors"
	"go.mongodb.org/mongo-driver/bson"
)

type couponStore struct {
	*Store
}

// Coupons returns an object implementing Coupons interface
func (s *Store) Coupons() dependency.Coupons {
	return &couponStore{Store: s}
}

// ResetUsage sets uses to zero on every coupon that has any and returns
// how many documents changed.
func (cs *couponStore) ResetUsage(ctx context.Context) (int64, error) {
	res, err := cs.db.Collection(collections[entity.CollectionCoupons].name).UpdateMany(ctx,
		bson.D{{Key: "uses", Value: bson.D{{Key: "$ne", Value: 0}}}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "uses", Value: 0}}}},
	)
	if err != nil {
		return 0, gerr.Storage("reset coupon usage", err)
	}
	return res.ModifiedCount, nil
}
