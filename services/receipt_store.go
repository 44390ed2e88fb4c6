package services

import (
	"aureliaskin_server/database"
	"aureliaskin_server/lib"
	"aureliaskin_server/structs/tables"
	"context"
	"time"
)

// ReceiptStore abstracts the reads behind the receipt composition. Lookups
// return nil (not an error) when the row is missing, so the service can
// decide per field whether absence is fatal or degradable.
type ReceiptStore interface {
	FindOrderByNumber(ctx context.Context, orderNumber string) (*tables.Order, error)
	FindPayment(ctx context.Context, orderID int64) (*tables.Payment, error)
	FindPaymentMethod(ctx context.Context, id int64) (*tables.PaymentMethod, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]tables.OrderItem, error)
	FindPrimaryImage(ctx context.Context, productID int64) (*tables.ProductImage, error)
}

type pgReceiptStore struct {
	db *database.DB
}

func NewReceiptStore(db *database.DB) ReceiptStore {
	return &pgReceiptStore{db: db}
}

func (s *pgReceiptStore) FindOrderByNumber(ctx context.Context, orderNumber string) (*tables.Order, error) {
	order, err := database.Query[tables.Order](s.db).
		Where("order_number", orderNumber).
		Timeout(5 * time.Second).
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return order, nil
}

func (s *pgReceiptStore) FindPayment(ctx context.Context, orderID int64) (*tables.Payment, error) {
	payment, err := database.Query[tables.Payment](s.db).
		Where("order_id", orderID).
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return payment, nil
}

func (s *pgReceiptStore) FindPaymentMethod(ctx context.Context, id int64) (*tables.PaymentMethod, error) {
	method, err := database.FindByID[tables.PaymentMethod](s.db, ctx, id)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return method, nil
}

func (s *pgReceiptStore) ListOrderItems(ctx context.Context, orderID int64) ([]tables.OrderItem, error) {
	items, err := database.Query[tables.OrderItem](s.db).
		Where("order_id", orderID).
		OrderBy("id", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return items, nil
}

func (s *pgReceiptStore) FindPrimaryImage(ctx context.Context, productID int64) (*tables.ProductImage, error) {
	image, err := database.Query[tables.ProductImage](s.db).
		Where("product_id", productID).
		Where("is_primary", true).
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return image, nil
}
