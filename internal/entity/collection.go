package entity

import "fmt"

// Collection identifies one of the entity collections the dashboard reads.
type Collection string

const (
	CollectionUsers      Collection = "users"
	CollectionStores     Collection = "stores"
	CollectionCoupons    Collection = "coupons"
	CollectionCategories Collection = "categories"
	CollectionRoles      Collection = "roles"
)

func (c Collection) String() string {
	return string(c)
}

// Field is a logical attribute name shared by every storage backend.
// Backends translate it to a column or document key.
type Field string

const (
	FieldID                   Field = "id"
	FieldName                 Field = "name"
	FieldIsActive             Field = "isActive"
	FieldStatus               Field = "status"
	FieldCouponType           Field = "couponType"
	FieldUses                 Field = "uses"
	FieldTotalCouponUsedTimes Field = "totalCouponUsedTimes"
	FieldStoreID              Field = "store"
	FieldCreatedAt            Field = "createdAt"
)

func (f Field) String() string {
	return string(f)
}

// Condition is a single equality match.
type Condition struct {
	Field Field
	Value any
}

// Filter is a conjunction of equality conditions. An empty filter matches every record.
type Filter []Condition

// Eq builds a one-condition filter.
func Eq(f Field, v any) Filter {
	return Filter{{Field: f, Value: v}}
}

// SortDirection is the order of a ranking query.
type SortDirection int

const (
	Descending SortDirection = iota
	Ascending
)

func (d SortDirection) String() string {
	switch d {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return fmt.Sprintf("SortDirection(%d)", int(d))
	}
}
