package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/jekabolt/grbpwr-deals/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	LabelUnknown  = "Unknown"
	LabelActive   = "Active"
	LabelInactive = "Inactive"
)

var hundred = decimal.NewFromInt(100)

// CouponsByStatus splits coupons by lifecycle status.
func (e *Engine) CouponsByStatus(ctx context.Context) ([]entity.LabelCount, error) {
	return e.groupedCounts(ctx, entity.CollectionCoupons, entity.FieldStatus)
}

// CouponsByType splits coupons into deals and coupons.
func (e *Engine) CouponsByType(ctx context.Context) ([]entity.LabelCount, error) {
	return e.groupedCounts(ctx, entity.CollectionCoupons, entity.FieldCouponType)
}

// StoreStatusCounts splits stores into active and inactive.
func (e *Engine) StoreStatusCounts(ctx context.Context) ([]entity.LabelCount, error) {
	return e.groupedCounts(ctx, entity.CollectionStores, entity.FieldIsActive)
}

func (e *Engine) groupedCounts(ctx context.Context, c entity.Collection, field entity.Field) ([]entity.LabelCount, error) {
	groups, err := e.metrics.GroupByField(ctx, c, field)
	if err != nil {
		return nil, fmt.Errorf("group %s by %s: %w", c, field, err)
	}
	return labelGroups(groups), nil
}

// labelGroups turns raw groups into labelled counts, merging values that
// share a label, ordered by count descending then label.
func labelGroups(groups []entity.FieldCount) []entity.LabelCount {
	caser := cases.Title(language.English)
	byLabel := make(map[string]int64, len(groups))
	var total int64
	for _, g := range groups {
		byLabel[label(caser, g.Value)] += g.Count
		total += g.Count
	}

	res := make([]entity.LabelCount, 0, len(byLabel))
	for l, n := range byLabel {
		res = append(res, entity.LabelCount{
			Label: l,
			Count: n,
			Share: share(n, total),
		})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		return res[i].Label < res[j].Label
	})
	return res
}

func label(caser cases.Caser, v string) string {
	switch v {
	case "":
		return LabelUnknown
	case "true":
		return LabelActive
	case "false":
		return LabelInactive
	default:
		return caser.String(v)
	}
}

// share is n as a percentage of total rounded to two places.
func share(n, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(n).Mul(hundred).Div(decimal.NewFromInt(total)).Round(2)
}
