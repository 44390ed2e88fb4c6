package database

import (
	"time"

	"github.com/uptrace/bun"
)

// QueryBuilder provides a small, type-safe fluent API for the select queries
// the read paths issue.
type QueryBuilder[T any] struct {
	db *DB

	wheres   []*WhereClause
	orders   []*OrderClause
	limitVal *int

	// Timeout
	timeout time.Duration
}

// WhereClause represents an equality WHERE condition
type WhereClause struct {
	Column string
	Value  any
}

// OrderClause represents an ORDER BY clause
type OrderClause struct {
	Column    string
	Direction string // "ASC" or "DESC"
}

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

// Query creates a new QueryBuilder instance
func Query[T any](db *DB) *QueryBuilder[T] {
	return &QueryBuilder[T]{
		db:     db,
		wheres: []*WhereClause{},
		orders: []*OrderClause{},
	}
}

// Where adds a WHERE condition (column = value)
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column: column,
		Value:  value,
	})
	return q
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, &OrderClause{
		Column:    column,
		Direction: string(direction),
	})
	return q
}

// Limit sets the LIMIT clause
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limitVal = &limit
	return q
}

// Timeout sets a timeout for the query
func (q *QueryBuilder[T]) Timeout(duration time.Duration) *QueryBuilder[T] {
	q.timeout = duration
	return q
}

// buildSelect constructs a bun SelectQuery with the model bound to dest
func (q *QueryBuilder[T]) buildSelect(dest any) *bun.SelectQuery {
	query := q.db.NewSelect().Model(dest)

	for _, where := range q.wheres {
		query = query.Where("? = ?", bun.Ident(where.Column), where.Value)
	}

	for _, order := range q.orders {
		query = query.OrderExpr("? ?", bun.Ident(order.Column), bun.Safe(order.Direction))
	}

	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}

	return query
}
