// Package backend is the table-oriented data service every form and view
// talks to: select with joins, insert, partial update, upsert and named RPCs.
package backend

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("backend: record not found")
	ErrUnknownRPC = errors.New("backend: unknown rpc")
	ErrConflict   = errors.New("backend: unique constraint violated")
)

// Filter is an equality condition on a column. A nil Value matches NULL.
type Filter struct {
	Column string
	Value  any
}

func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

// Query narrows a Select or Update.
type Query struct {
	Filters []Filter
	// Joins names belongs-to associations to load, e.g. "Property".
	Joins []string
	// Order is "<column> asc|desc".
	Order string
	Limit int
}

func Where(filters ...Filter) Query {
	return Query{Filters: filters}
}

func (q Query) Join(names ...string) Query {
	q.Joins = append(append([]string(nil), q.Joins...), names...)
	return q
}

func (q Query) OrderBy(order string) Query {
	q.Order = order
	return q
}

func (q Query) Take(limit int) Query {
	q.Limit = limit
	return q
}

// Client is implemented by Gorm and Memory.
//
// dest passed to Select is a pointer to a slice of models; row passed to
// Insert/Upsert and model passed to Update are pointers to models.
type Client interface {
	Select(ctx context.Context, dest any, q Query) error
	Insert(ctx context.Context, row any) error
	Update(ctx context.Context, model any, q Query, fields map[string]any) (int64, error)
	Upsert(ctx context.Context, row any, conflict []string, columns []string) error
	Call(ctx context.Context, fn string, args map[string]any) (any, error)
}

// All selects every row of T matching q.
func All[T any](ctx context.Context, c Client, q Query) ([]T, error) {
	var rows []T
	if err := c.Select(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// First selects the first row of T matching q or returns ErrNotFound.
func First[T any](ctx context.Context, c Client, q Query) (*T, error) {
	rows, err := All[T](ctx, c, q.Take(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
