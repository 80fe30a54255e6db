package entity

import "time"

// CouponStatus is the lifecycle state of a coupon.
type CouponStatus string

const (
	CouponStatusActive  CouponStatus = "active"
	CouponStatusExpired CouponStatus = "expired"
)

// CouponType distinguishes deals (no code) from coupons (with code).
type CouponType string

const (
	CouponTypeDeal   CouponType = "deal"
	CouponTypeCoupon CouponType = "coupon"
)

// Coupon is the read model of the coupon collection.
type Coupon struct {
	ID         string       `db:"id" bson:"_id"`
	StoreID    string       `db:"store_id" bson:"store"`
	Title      string       `db:"title" bson:"title"`
	Code       string       `db:"code" bson:"code"`
	Status     CouponStatus `db:"status" bson:"status"`
	CouponType CouponType   `db:"coupon_type" bson:"couponType"`
	Uses       int64        `db:"uses" bson:"uses"`
	CreatedAt  time.Time    `db:"created_at" bson:"createdAt"`
}

// Store is the read model of the store collection.
type Store struct {
	ID                   string    `db:"id" bson:"_id"`
	Name                 string    `db:"name" bson:"name"`
	IsActive             bool      `db:"is_active" bson:"isActive"`
	TotalCouponUsedTimes int64     `db:"total_coupon_used_times" bson:"totalCouponUsedTimes"`
	CreatedAt            time.Time `db:"created_at" bson:"createdAt"`
}
