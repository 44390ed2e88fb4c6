package services

import (
	"aureliaskin_server/database"
	"aureliaskin_server/lib"
	"aureliaskin_server/structs/tables"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// StockDecrementer is the capability the checkout relies on for inventory:
// an operation that atomically subtracts from a product's stock and fails if
// the result would go negative.
type StockDecrementer interface {
	DecrementStock(ctx context.Context, productID int64, quantity int) error
}

// OrderStore abstracts the storage side of the order intake sequence so the
// sequencing logic can be exercised without a live database.
type OrderStore interface {
	// ResolveProfile returns the buyer profile for an external auth-system
	// user id, or nil when no such profile exists.
	ResolveProfile(ctx context.Context, userID uuid.UUID) (*tables.Profile, error)

	// RunCheckout runs fn inside a single transaction. Returning an error
	// from fn rolls every write back.
	RunCheckout(ctx context.Context, fn func(tx CheckoutTx) error) error
}

// CheckoutTx is the set of writes available inside a checkout transaction.
type CheckoutTx interface {
	StockDecrementer

	InsertOrder(ctx context.Context, order *tables.Order) error
	InsertOrderItem(ctx context.Context, item *tables.OrderItem) error
	InsertPayment(ctx context.Context, payment *tables.Payment) error
	FindCart(ctx context.Context, profileID int64) (*tables.Cart, error)
	DeleteCartItems(ctx context.Context, cartID int64) (int, error)
	DeleteCart(ctx context.Context, cartID int64) error
}

// pgOrderStore is the bun-backed OrderStore.
type pgOrderStore struct {
	db *database.DB
}

func NewOrderStore(db *database.DB) OrderStore {
	return &pgOrderStore{db: db}
}

func (s *pgOrderStore) ResolveProfile(ctx context.Context, userID uuid.UUID) (*tables.Profile, error) {
	profile, err := database.Query[tables.Profile](s.db).
		Where("user_id", userID).
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return profile, nil
}

func (s *pgOrderStore) RunCheckout(ctx context.Context, fn func(tx CheckoutTx) error) error {
	return database.RunInTx(ctx, s.db, func(tx bun.Tx) error {
		return fn(&pgCheckoutTx{tx: tx})
	})
}

type pgCheckoutTx struct {
	tx bun.Tx
}

func (c *pgCheckoutTx) InsertOrder(ctx context.Context, order *tables.Order) error {
	_, err := c.tx.NewInsert().Model(order).Returning("id").Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}

func (c *pgCheckoutTx) InsertOrderItem(ctx context.Context, item *tables.OrderItem) error {
	_, err := c.tx.NewInsert().Model(item).Returning("id").Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}

// DecrementStock performs the decrement as a single conditional UPDATE so it
// stays atomic under concurrent checkouts: no row is touched when the
// remaining stock is smaller than the requested quantity.
func (c *pgCheckoutTx) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	res, err := c.tx.NewUpdate().
		Model((*tables.Product)(nil)).
		Set("stock = stock - ?", quantity).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", productID).
		Where("stock >= ?", quantity).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return lib.ErrInsufficientStock
	}
	return nil
}

func (c *pgCheckoutTx) InsertPayment(ctx context.Context, payment *tables.Payment) error {
	_, err := c.tx.NewInsert().Model(payment).Returning("id").Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}

func (c *pgCheckoutTx) FindCart(ctx context.Context, profileID int64) (*tables.Cart, error) {
	cart := new(tables.Cart)
	err := c.tx.NewSelect().
		Model(cart).
		Where("profile_id = ?", profileID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, lib.MapPgError(err)
	}
	return cart, nil
}

func (c *pgCheckoutTx) DeleteCartItems(ctx context.Context, cartID int64) (int, error) {
	res, err := c.tx.NewDelete().
		Model((*tables.CartItem)(nil)).
		Where("cart_id = ?", cartID).
		Exec(ctx)
	if err != nil {
		return 0, lib.MapPgError(err)
	}

	rows, _ := res.RowsAffected()
	return int(rows), nil
}

func (c *pgCheckoutTx) DeleteCart(ctx context.Context, cartID int64) error {
	_, err := c.tx.NewDelete().
		Model((*tables.Cart)(nil)).
		Where("id = ?", cartID).
		Exec(ctx)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}
