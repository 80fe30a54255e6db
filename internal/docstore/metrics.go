package docstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"log/slog"

	"github.com/jekabolt/grbpwr-deals/internal/dependency"
	"github.com/jekabolt/grbpwr-deals/internal/entity"
	gerr "github.com/jekabolt/grbpwr-deals/internal/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type metricsStore struct {
	*Store
}

// Metrics returns an object implementing Metrics interface
func (s *Store) Metrics() dependency.Metrics {
	return &metricsStore{Store: s}
}

func rejected(ctx context.Context, op string, err error) bool {
	if !errors.Is(err, gerr.ErrInvalidFilter) {
		return false
	}
	slog.Default().DebugContext(ctx, "metrics query with invalid filter",
		slog.String("op", op),
		slog.String("err", err.Error()),
	)
	return true
}

func matchFilter(col collection, filter entity.Filter) (bson.D, error) {
	m := bson.D{}
	for _, cond := range filter {
		k, err := col.key(cond.Field)
		if err != nil {
			return nil, err
		}
		v, err := k.bindValue(cond.Value)
		if err != nil {
			return nil, err
		}
		m = append(m, bson.E{Key: k.name, Value: v})
	}
	return m, nil
}

func (ms *metricsStore) Count(ctx context.Context, c entity.Collection, filter entity.Filter) (int64, error) {
	col, err := lookupCollection(c)
	if err != nil {
		rejected(ctx, "count", err)
		return 0, nil
	}
	m, err := matchFilter(col, filter)
	if err != nil {
		rejected(ctx, "count", err)
		return 0, nil
	}
	n, err := ms.db.Collection(col.name).CountDocuments(ctx, m)
	if err != nil {
		return 0, gerr.Storage(fmt.Sprintf("count %s", c), err)
	}
	return n, nil
}

type groupRow struct {
	ID    bson.RawValue `bson:"_id"`
	Count int64         `bson:"cnt"`
}

func (ms *metricsStore) GroupByField(ctx context.Context, c entity.Collection, field entity.Field) ([]entity.FieldCount, error) {
	col, err := lookupCollection(c)
	if err != nil {
		rejected(ctx, "group by field", err)
		return nil, nil
	}
	k, err := col.key(field)
	if err != nil {
		rejected(ctx, "group by field", err)
		return nil, nil
	}

	p := newPipeline().groupCount(fieldRef(k.name)).sortAsc("_id")
	cur, err := ms.db.Collection(col.name).Aggregate(ctx, p.build())
	if err != nil {
		return nil, gerr.Storage(fmt.Sprintf("group %s by %s", c, field), err)
	}
	rows := []groupRow{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, gerr.Storage(fmt.Sprintf("group %s by %s", c, field), err)
	}

	res := make([]entity.FieldCount, 0, len(rows))
	for _, r := range rows {
		res = append(res, entity.FieldCount{Value: rawString(r.ID), Count: r.Count})
	}
	return res, nil
}

type monthRow struct {
	ID struct {
		Year  int `bson:"y"`
		Month int `bson:"m"`
	} `bson:"_id"`
	Count int64 `bson:"cnt"`
}

func (ms *metricsStore) BucketByMonth(ctx context.Context, c entity.Collection, since time.Time) ([]entity.MonthCount, error) {
	col, err := lookupCollection(c)
	if err != nil {
		rejected(ctx, "bucket by month", err)
		return nil, nil
	}
	k, err := col.key(entity.FieldCreatedAt)
	if err != nil {
		rejected(ctx, "bucket by month", err)
		return nil, nil
	}

	p := newPipeline().
		match(bson.D{{Key: k.name, Value: bson.D{{Key: "$gte", Value: since.UTC()}}}}).
		groupCount(monthOf(k.name)).
		sortAsc("_id.y", "_id.m")
	cur, err := ms.db.Collection(col.name).Aggregate(ctx, p.build())
	if err != nil {
		return nil, gerr.Storage(fmt.Sprintf("bucket %s by month", c), err)
	}
	rows := []monthRow{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, gerr.Storage(fmt.Sprintf("bucket %s by month", c), err)
	}

	res := make([]entity.MonthCount, 0, len(rows))
	for _, r := range rows {
		res = append(res, entity.MonthCount{
			Year:  r.ID.Year,
			Month: time.Month(r.ID.Month),
			Count: r.Count,
		})
	}
	return res, nil
}

func (ms *metricsStore) TopNByField(ctx context.Context, c entity.Collection, field entity.Field, limit int, dir entity.SortDirection) ([]entity.RankedValue, error) {
	if limit <= 0 {
		return nil, nil
	}
	col, err := lookupCollection(c)
	if err != nil {
		rejected(ctx, "top n", err)
		return nil, nil
	}
	k, err := col.key(field)
	if err != nil {
		rejected(ctx, "top n", err)
		return nil, nil
	}
	if k.kind != keyNumber {
		rejected(ctx, "top n", gerr.InvalidFilter("%s is not numeric", field))
		return nil, nil
	}

	order := -1
	if dir == entity.Ascending {
		order = 1
	}
	projection := bson.D{{Key: k.name, Value: 1}}
	name := col.displayKey()
	if name != "" {
		projection = append(projection, bson.E{Key: name, Value: 1})
	}
	opts := options.Find().
		SetSort(bson.D{{Key: k.name, Value: order}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(projection)

	cur, err := ms.db.Collection(col.name).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, gerr.Storage(fmt.Sprintf("top %s by %s", c, field), err)
	}
	docs := []bson.Raw{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, gerr.Storage(fmt.Sprintf("top %s by %s", c, field), err)
	}

	res := make([]entity.RankedValue, 0, len(docs))
	for _, d := range docs {
		rv := entity.RankedValue{
			ID:    rawString(d.Lookup("_id")),
			Value: rawInt(d.Lookup(k.name)),
		}
		if name != "" {
			rv.Name = rawString(d.Lookup(name))
		}
		res = append(res, rv)
	}
	return res, nil
}

// rawString renders a group key or identifier. Missing and null values become "".
func rawString(v bson.RawValue) string {
	switch v.Type {
	case bson.TypeString:
		return v.StringValue()
	case bson.TypeBoolean:
		return strconv.FormatBool(v.Boolean())
	case bson.TypeObjectID:
		return v.ObjectID().Hex()
	case bson.TypeInt32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case bson.TypeInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case bson.TypeDouble:
		return strconv.FormatFloat(v.Double(), 'f', -1, 64)
	default:
		return ""
	}
}

func rawInt(v bson.RawValue) int64 {
	switch v.Type {
	case bson.TypeInt32:
		return int64(v.Int32())
	case bson.TypeInt64:
		return v.Int64()
	case bson.TypeDouble:
		return int64(v.Double())
	default:
		return 0
	}
}
