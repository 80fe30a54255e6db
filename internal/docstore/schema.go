package docstore

import (
	"github.com/jekabolt/grbpwr-deals/internal/entity"
	gerr "github.com/jekabolt/grbpwr-deals/internal/errors"
)

type keyKind int

const (
	keyString keyKind = iota
	keyBool
	keyNumber
	keyTime
	keyRef
)

type key struct {
	name string
	kind keyKind
}

type collection struct {
	name   string
	fields map[entity.Field]key
}

var collections = map[entity.Collection]collection{
	entity.CollectionUsers: {
		name: "users",
		fields: map[entity.Field]key{
			entity.FieldID:        {"_id", keyRef},
			entity.FieldIsActive:  {"isActive", keyBool},
			entity.FieldCreatedAt: {"createdAt", keyTime},
		},
	},
	entity.CollectionStores: {
		name: "stores",
		fields: map[entity.Field]key{
			entity.FieldID:                   {"_id", keyRef},
			entity.FieldName:                 {"name", keyString},
			entity.FieldIsActive:             {"isActive", keyBool},
			entity.FieldTotalCouponUsedTimes: {"totalCouponUsedTimes", keyNumber},
			entity.FieldCreatedAt:            {"createdAt", keyTime},
		},
	},
	entity.CollectionCoupons: {
		name: "coupons",
		fields: map[entity.Field]key{
			entity.FieldID:         {"_id", keyRef},
			entity.FieldName:       {"title", keyString},
			entity.FieldStoreID:    {"store", keyRef},
			entity.FieldStatus:     {"status", keyString},
			entity.FieldCouponType: {"couponType", keyString},
			entity.FieldUses:       {"uses", keyNumber},
			entity.FieldCreatedAt:  {"createdAt", keyTime},
		},
	},
	entity.CollectionCategories: {
		name: "categories",
		fields: map[entity.Field]key{
			entity.FieldID:        {"_id", keyRef},
			entity.FieldName:      {"name", keyString},
			entity.FieldCreatedAt: {"createdAt", keyTime},
		},
	},
	entity.CollectionRoles: {
		name: "roles",
		fields: map[entity.Field]key{
			entity.FieldID:   {"_id", keyRef},
			entity.FieldName: {"name", keyString},
		},
	},
}

func lookupCollection(c entity.Collection) (collection, error) {
	col, ok := collections[c]
	if !ok {
		return collection{}, gerr.InvalidFilter("unknown collection %q", c)
	}
	return col, nil
}

func (c collection) key(f entity.Field) (key, error) {
	k, ok := c.fields[f]
	if !ok {
		return key{}, gerr.InvalidFilter("unknown field %q on %s", f, c.name)
	}
	return k, nil
}

// displayKey is the document key projected as the name of ranked documents.
func (c collection) displayKey() string {
	if k, ok := c.fields[entity.FieldName]; ok {
		return k.name
	}
	return ""
}

func (k key) bindValue(v any) (any, error) {
	switch k.kind {
	case keyBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case keyNumber:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		}
	case keyString:
		switch s := v.(type) {
		case string:
			return s, nil
		case entity.CouponStatus:
			return string(s), nil
		case entity.CouponType:
			return string(s), nil
		}
	case keyRef:
		return v, nil
	}
	return nil, gerr.InvalidFilter("%s can't be compared with %T", k.name, v)
}
