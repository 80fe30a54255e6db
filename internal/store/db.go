package store

import (
	"context"
	"fmt"

	"github.com/Knetic/go-namedParameterQuery"
	"github.com/jmoiron/sqlx"
)

// bind rewrites :name placeholders to positional ones and expands slice params.
func bind(query string, params map[string]any) (string, []any, error) {
	q := namedParameterQuery.NewNamedParameterQuery(query)
	q.SetValuesFromMap(params)
	bound, args, err := sqlx.In(q.GetParsedQuery(), q.GetParsedParameters()...)
	if err != nil {
		return "", nil, fmt.Errorf("bind %q: %w", query, err)
	}
	return bound, args, nil
}

// selectNamed scans every row of query into a T.
func selectNamed[T any](ctx context.Context, conn DB, query string, params map[string]any) ([]T, error) {
	query, args, err := bind(query, params)
	if err != nil {
		return nil, err
	}
	rows := []T{}
	if err := conn.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	return rows, nil
}

func countNamed(ctx context.Context, conn DB, query string, params map[string]any) (int64, error) {
	query, args, err := bind(query, params)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := conn.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("get count: %w", err)
	}
	return n, nil
}

// execNamed runs query and reports the number of rows it changed.
func execNamed(ctx context.Context, conn DB, query string, params map[string]any) (int64, error) {
	query, args, err := bind(query, params)
	if err != nil {
		return 0, err
	}
	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("exec: %w", err)
	}
	return res.RowsAffected()
}
