package store

import (
	"fmt"

	"github.com/jekabolt/grbpwr-deals/internal/entity"
	gerr "github.com/jekabolt/grbpwr-deals/internal/errors"
)

type columnKind int

const (
	kindString columnKind = iota
	kindBool
	kindInt
	kindTime
)

type column struct {
	name string
	kind columnKind
}

type table struct {
	name string
	// nameExpr is selected as the display name of ranked rows.
	nameExpr string
	columns  map[entity.Field]column
}

// tables whitelists every column a metrics query may reference.
// Identifiers are interpolated into SQL only after a lookup here.
var tables = map[entity.Collection]table{
	entity.CollectionUsers: {
		name:     "users",
		nameExpr: "''",
		columns: map[entity.Field]column{
			entity.FieldID:        {"id", kindInt},
			entity.FieldIsActive:  {"is_active", kindBool},
			entity.FieldCreatedAt: {"created_at", kindTime},
		},
	},
	entity.CollectionStores: {
		name:     "stores",
		nameExpr: "name",
		columns: map[entity.Field]column{
			entity.FieldID:                   {"id", kindInt},
			entity.FieldName:                 {"name", kindString},
			entity.FieldIsActive:             {"is_active", kindBool},
			entity.FieldTotalCouponUsedTimes: {"total_coupon_used_times", kindInt},
			entity.FieldCreatedAt:            {"created_at", kindTime},
		},
	},
	entity.CollectionCoupons: {
		name:     "coupons",
		nameExpr: "title",
		columns: map[entity.Field]column{
			entity.FieldID:         {"id", kindInt},
			entity.FieldStoreID:    {"store_id", kindInt},
			entity.FieldStatus:     {"status", kindString},
			entity.FieldCouponType: {"coupon_type", kindString},
			entity.FieldUses:       {"uses", kindInt},
			entity.FieldCreatedAt:  {"created_at", kindTime},
		},
	},
	entity.CollectionCategories: {
		name:     "categories",
		nameExpr: "name",
		columns: map[entity.Field]column{
			entity.FieldID:        {"id", kindInt},
			entity.FieldName:      {"name", kindString},
			entity.FieldCreatedAt: {"created_at", kindTime},
		},
	},
	entity.CollectionRoles: {
		name:     "roles",
		nameExpr: "name",
		columns: map[entity.Field]column{
			entity.FieldID:   {"id", kindInt},
			entity.FieldName: {"name", kindString},
		},
	},
}

func lookupTable(c entity.Collection) (table, error) {
	t, ok := tables[c]
	if !ok {
		return table{}, gerr.InvalidFilter("unknown collection %q", c)
	}
	return t, nil
}

func (t table) column(f entity.Field) (column, error) {
	col, ok := t.columns[f]
	if !ok {
		return column{}, gerr.InvalidFilter("unknown field %q on %s", f, t.name)
	}
	return col, nil
}

// bindValue converts a filter value to the driver type of col.
func (col column) bindValue(v any) (any, error) {
	switch col.kind {
	case kindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, gerr.InvalidFilter("%s expects a bool, got %T", col.name, v)
		}
		return b, nil
	case kindInt:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		}
		return nil, gerr.InvalidFilter("%s expects an integer, got %T", col.name, v)
	case kindString:
		switch s := v.(type) {
		case string:
			return s, nil
		case fmt.Stringer:
			return s.String(), nil
		case entity.CouponStatus:
			return string(s), nil
		case entity.CouponType:
			return string(s), nil
		}
		return nil, gerr.InvalidFilter("%s expects a string, got %T", col.name, v)
	default:
		return nil, gerr.InvalidFilter("%s can't be used in an equality filter", col.name)
	}
}

// normalizeValue turns a grouped column value into the repository's string form.
func (col column) normalizeValue(raw string) string {
	if col.kind != kindBool {
		return raw
	}
	switch raw {
	case "1":
		return "true"
	case "0":
		return "false"
	}
	return raw
}
