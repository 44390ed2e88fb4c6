package database

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// RunInTx executes a function within a database transaction. The transaction
// is rolled back when fn returns an error and committed otherwise.
func RunInTx(ctx context.Context, db *DB, fn func(tx bun.Tx) error) error {
	return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(tx)
	})
}

// FindByID is a helper to find a record by ID
func FindByID[T any](db *DB, ctx context.Context, id any) (*T, error) {
	return Query[T](db).Where("id", id).First(ctx)
}
