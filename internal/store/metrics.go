package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/jekabolt/grbpwr-deals/internal/dependency"
	"github.com/jekabolt/grbpwr-deals/internal/entity"
	gerr "github.com/jekabolt/grbpwr-deals/internal/errors"
)

type metricsStore struct {
	*MYSQLStore
}

// Metrics returns an object implementing Metrics interface
func (ms *MYSQLStore) Metrics() dependency.Metrics {
	return &metricsStore{MYSQLStore: ms}
}

// invalidFilter logs a rejected filter. Dashboard queries treat it as no match.
func invalidFilter(ctx context.Context, op string, err error) {
	slog.Default().DebugContext(ctx, "metrics query with invalid filter",
		slog.String("op", op),
		slog.String("err", err.Error()),
	)
}

func (ms *metricsStore) Count(ctx context.Context, c entity.Collection, filter entity.Filter) (int64, error) {
	query, params, err := countQuery(c, filter)
	if err != nil {
		if errors.Is(err, gerr.ErrInvalidFilter) {
			invalidFilter(ctx, "count", err)
			return 0, nil
		}
		return 0, err
	}
	n, err := countNamed(ctx, ms.DB(), query, params)
	if err != nil {
		return 0, gerr.Storage(fmt.Sprintf("count %s", c), err)
	}
	return n, nil
}

func countQuery(c entity.Collection, filter entity.Filter) (string, map[string]any, error) {
	t, err := lookupTable(c)
	if err != nil {
		return "", nil, err
	}
	params := make(map[string]any, len(filter))
	conds := make([]string, 0, len(filter))
	for i, cond := range filter {
		col, err := t.column(cond.Field)
		if err != nil {
			return "", nil, err
		}
		v, err := col.bindValue(cond.Value)
		if err != nil {
			return "", nil, err
		}
		key := fmt.Sprintf("p%d", i)
		conds = append(conds, fmt.Sprintf("%s = :%s", col.name, key))
		params[key] = v
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", t.name)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return query, params, nil
}

func (ms *metricsStore) GroupByField(ctx context.Context, c entity.Collection, field entity.Field) ([]entity.FieldCount, error) {
	t, err := lookupTable(c)
	if err != nil {
		invalidFilter(ctx, "group by", err)
		return nil, nil
	}
	col, err := t.column(field)
	if err != nil {
		invalidFilter(ctx, "group by", err)
		return nil, nil
	}

	query := fmt.Sprintf("SELECT CAST(%[1]s AS CHAR) AS value, COUNT(*) AS cnt FROM %[2]s GROUP BY %[1]s", col.name, t.name)
	rows, err := selectNamed[struct {
		Value sql.NullString `db:"value"`
		Count int64          `db:"cnt"`
	}](ctx, ms.DB(), query, nil)
	if err != nil {
		return nil, gerr.Storage(fmt.Sprintf("group %s by %s", c, field), err)
	}

	result := make([]entity.FieldCount, len(rows))
	for i, r := range rows {
		result[i] = entity.FieldCount{Value: col.normalizeValue(r.Value.String), Count: r.Count}
	}
	return result, nil
}

func (ms *metricsStore) BucketByMonth(ctx context.Context, c entity.Collection, since time.Time) ([]entity.MonthCount, error) {
	t, err := lookupTable(c)
	if err != nil {
		invalidFilter(ctx, "bucket by month", err)
		return nil, nil
	}
	col, err := t.column(entity.FieldCreatedAt)
	if err != nil {
		invalidFilter(ctx, "bucket by month", err)
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT YEAR(%[1]s) AS y, MONTH(%[1]s) AS m, COUNT(*) AS cnt FROM %[2]s WHERE %[1]s >= :since GROUP BY y, m ORDER BY y, m`, col.name, t.name)
	rows, err := selectNamed[struct {
		Year  int   `db:"y"`
		Month int   `db:"m"`
		Count int64 `db:"cnt"`
	}](ctx, ms.DB(), query, map[string]any{"since": since.UTC()})
	if err != nil {
		return nil, gerr.Storage(fmt.Sprintf("bucket %s by month", c), err)
	}

	result := make([]entity.MonthCount, len(rows))
	for i, r := range rows {
		result[i] = entity.MonthCount{Year: r.Year, Month: time.Month(r.Month), Count: r.Count}
	}
	return result, nil
}

func (ms *metricsStore) TopNByField(ctx context.Context, c entity.Collection, field entity.Field, limit int, dir entity.SortDirection) ([]entity.RankedValue, error) {
	if limit <= 0 {
		return nil, nil
	}
	t, err := lookupTable(c)
	if err != nil {
		invalidFilter(ctx, "top n", err)
		return nil, nil
	}
	col, err := t.column(field)
	if err != nil || col.kind != kindInt {
		if err == nil {
			err = gerr.InvalidFilter("%s is not numeric", col.name)
		}
		invalidFilter(ctx, "top n", err)
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT CAST(id AS CHAR) AS id, COALESCE(%s, '') AS name, %s AS value FROM %s ORDER BY %s %s LIMIT :limit`,
		t.nameExpr, col.name, t.name, col.name, dir.String())
	rows, err := selectNamed[entity.RankedValue](ctx, ms.DB(), query, map[string]any{"limit": limit})
	if err != nil {
		return nil, gerr.Storage(fmt.Sprintf("top %s by %s", c, field), err)
	}
	return rows, nil
}
