package services

import (
	"aureliaskin_server/lib"
	"aureliaskin_server/structs"
	"aureliaskin_server/structs/tables"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type stockDecrement struct {
	productID int64
	quantity  int
}

// fakeCheckoutTx records every write the sequencer performs. Writes are only
// considered durable when the enclosing fakeOrderStore marks the transaction
// committed.
type fakeCheckoutTx struct {
	orders     []*tables.Order
	items      []*tables.OrderItem
	payments   []*tables.Payment
	decrements []stockDecrement

	cart             *tables.Cart
	cartErr          error
	deletedCartItems []int64
	deletedCarts     []int64

	decrementErrFor int64
	decrementErr    error
	paymentErr      error

	nextID int64
}

func (tx *fakeCheckoutTx) InsertOrder(ctx context.Context, order *tables.Order) error {
	tx.nextID++
	order.Id = tx.nextID
	tx.orders = append(tx.orders, order)
	return nil
}

func (tx *fakeCheckoutTx) InsertOrderItem(ctx context.Context, item *tables.OrderItem) error {
	tx.nextID++
	item.Id = tx.nextID
	tx.items = append(tx.items, item)
	return nil
}

func (tx *fakeCheckoutTx) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	if tx.decrementErr != nil && tx.decrementErrFor == productID {
		return tx.decrementErr
	}
	tx.decrements = append(tx.decrements, stockDecrement{productID: productID, quantity: quantity})
	return nil
}

func (tx *fakeCheckoutTx) InsertPayment(ctx context.Context, payment *tables.Payment) error {
	if tx.paymentErr != nil {
		return tx.paymentErr
	}
	tx.nextID++
	payment.Id = tx.nextID
	tx.payments = append(tx.payments, payment)
	return nil
}

func (tx *fakeCheckoutTx) FindCart(ctx context.Context, profileID int64) (*tables.Cart, error) {
	if tx.cartErr != nil {
		return nil, tx.cartErr
	}
	return tx.cart, nil
}

func (tx *fakeCheckoutTx) DeleteCartItems(ctx context.Context, cartID int64) (int, error) {
	tx.deletedCartItems = append(tx.deletedCartItems, cartID)
	return 2, nil
}

func (tx *fakeCheckoutTx) DeleteCart(ctx context.Context, cartID int64) error {
	tx.deletedCarts = append(tx.deletedCarts, cartID)
	return nil
}

type fakeOrderStore struct {
	profile    *tables.Profile
	profileErr error

	tx        *fakeCheckoutTx
	committed bool
	ranTx     bool
}

func (s *fakeOrderStore) ResolveProfile(ctx context.Context, userID uuid.UUID) (*tables.Profile, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return s.profile, nil
}

func (s *fakeOrderStore) RunCheckout(ctx context.Context, fn func(tx CheckoutTx) error) error {
	s.ranTx = true
	if err := fn(s.tx); err != nil {
		return err
	}
	s.committed = true
	return nil
}

func testLogger() *gecho.Logger {
	return gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error"))))
}

func testConfig() *structs.Config {
	return &structs.Config{
		Orders: &structs.OrdersConfig{
			NumberPrefix:      "AUR",
			EstimatedDelivery: "3-5 business days",
		},
		Email: &structs.EmailConfig{Enabled: false},
	}
}

func placeOrderRequest() *structs.PlaceOrderRequest {
	return &structs.PlaceOrderRequest{
		UserID: uuid.New(),
		Address: structs.ShippingAddress{
			RecipientName: "Maya Tan",
			PhoneNumber:   "+6281234567890",
			AddressLine1:  "Jl. Melati 12",
			City:          "Jakarta",
			Province:      "DKI Jakarta",
			PostalCode:    "10110",
			Country:       "ID",
		},
		PaymentMethodID: 2,
		Items: []structs.OrderItemRequest{
			{ID: 11, Name: "Hydrating Serum", Price: 24.50, Quantity: 2},
			{ID: 12, Name: "Night Cream", Price: 31.00, Quantity: 1},
		},
		Subtotal: 80.00,
		Shipping: 5.00,
		Tax:      8.50,
		Total:    93.50,
	}
}

func newOrderServiceForTest(store *fakeOrderStore) *OrderService {
	cfg := testConfig()
	logger := testLogger()
	return NewOrderService(logger, cfg, store, NewEmailService(logger, cfg))
}

func TestPlaceOrderHappyPath(t *testing.T) {
	tx := &fakeCheckoutTx{cart: &tables.Cart{Id: 77, ProfileId: 5}}
	store := &fakeOrderStore{
		profile: &tables.Profile{Id: 5, UserId: uuid.New()},
		tx:      tx,
	}
	svc := newOrderServiceForTest(store)

	req := placeOrderRequest()
	result, err := svc.PlaceOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}
	if !store.committed {
		t.Fatal("expected checkout transaction to commit")
	}

	if !strings.HasPrefix(result.OrderNumber, "AUR-") {
		t.Errorf("order number %q does not carry the configured prefix", result.OrderNumber)
	}
	if result.OrderID == 0 {
		t.Error("expected a non-zero order id")
	}

	if len(tx.orders) != 1 {
		t.Fatalf("expected 1 order insert, got %d", len(tx.orders))
	}
	order := tx.orders[0]
	if order.ProfileId != 5 {
		t.Errorf("order profile id = %d, want 5", order.ProfileId)
	}
	if order.RecipientName != "Maya Tan" || order.City != "Jakarta" {
		t.Errorf("shipping snapshot not copied onto order: %+v", order)
	}
	if order.TotalAmount != req.Total {
		t.Errorf("order total = %v, want %v", order.TotalAmount, req.Total)
	}
	if order.Status != tables.OrderStatusCreated {
		t.Errorf("order status = %q, want %q", order.Status, tables.OrderStatusCreated)
	}

	if len(tx.items) != 2 {
		t.Fatalf("expected 2 order item inserts, got %d", len(tx.items))
	}
	for i, item := range tx.items {
		want := req.Items[i]
		if item.ProductId != want.ID || item.ProductName != want.Name || item.Price != want.Price || item.Quantity != want.Quantity {
			t.Errorf("item %d snapshot = %+v, want %+v", i, item, want)
		}
		if item.OrderId != order.Id {
			t.Errorf("item %d order id = %d, want %d", i, item.OrderId, order.Id)
		}
	}

	wantDecrements := []stockDecrement{{11, 2}, {12, 1}}
	if len(tx.decrements) != len(wantDecrements) {
		t.Fatalf("expected %d stock decrements, got %d", len(wantDecrements), len(tx.decrements))
	}
	for i, d := range tx.decrements {
		if d != wantDecrements[i] {
			t.Errorf("decrement %d = %+v, want %+v", i, d, wantDecrements[i])
		}
	}

	if len(tx.payments) != 1 {
		t.Fatalf("expected 1 payment insert, got %d", len(tx.payments))
	}
	payment := tx.payments[0]
	if payment.Status != tables.PaymentStatusPending {
		t.Errorf("payment status = %q, want pending", payment.Status)
	}
	if payment.Amount != req.Total {
		t.Errorf("payment amount = %v, want %v", payment.Amount, req.Total)
	}
	if payment.PaymentMethodId != req.PaymentMethodID {
		t.Errorf("payment method id = %d, want %d", payment.PaymentMethodId, req.PaymentMethodID)
	}

	if len(tx.deletedCartItems) != 1 || tx.deletedCartItems[0] != 77 {
		t.Errorf("cart items deletion = %v, want [77]", tx.deletedCartItems)
	}
	if len(tx.deletedCarts) != 1 || tx.deletedCarts[0] != 77 {
		t.Errorf("cart deletion = %v, want [77]", tx.deletedCarts)
	}
}

func TestPlaceOrderProfileNotFound(t *testing.T) {
	store := &fakeOrderStore{profile: nil, tx: &fakeCheckoutTx{}}
	svc := newOrderServiceForTest(store)

	_, err := svc.PlaceOrder(context.Background(), placeOrderRequest())
	if !errors.Is(err, lib.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if store.ranTx {
		t.Error("checkout transaction must not start when the profile is missing")
	}
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	tx := &fakeCheckoutTx{
		cart:            &tables.Cart{Id: 9, ProfileId: 5},
		decrementErrFor: 12,
		decrementErr:    lib.ErrInsufficientStock,
	}
	store := &fakeOrderStore{
		profile: &tables.Profile{Id: 5, UserId: uuid.New()},
		tx:      tx,
	}
	svc := newOrderServiceForTest(store)

	_, err := svc.PlaceOrder(context.Background(), placeOrderRequest())
	if !errors.Is(err, lib.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if store.committed {
		t.Error("transaction must roll back when stock runs out mid-sequence")
	}
	// The first item's writes happened inside the transaction before the
	// failure; the commit flag is what decides durability.
	if len(tx.payments) != 0 {
		t.Errorf("no payment may be written after a stock failure, got %d", len(tx.payments))
	}
	if len(tx.deletedCarts) != 0 {
		t.Errorf("cart must not be cleared after a stock failure")
	}
}

func TestPlaceOrderCartNotFoundRollsBack(t *testing.T) {
	tx := &fakeCheckoutTx{cart: nil}
	store := &fakeOrderStore{
		profile: &tables.Profile{Id: 5, UserId: uuid.New()},
		tx:      tx,
	}
	svc := newOrderServiceForTest(store)

	_, err := svc.PlaceOrder(context.Background(), placeOrderRequest())
	if !errors.Is(err, lib.ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
	if store.committed {
		t.Error("transaction must roll back when the cart is missing")
	}
}

func TestPlaceOrderPaymentFailureRollsBack(t *testing.T) {
	paymentErr := errors.New("payment insert failed")
	tx := &fakeCheckoutTx{
		cart:       &tables.Cart{Id: 3, ProfileId: 5},
		paymentErr: paymentErr,
	}
	store := &fakeOrderStore{
		profile: &tables.Profile{Id: 5, UserId: uuid.New()},
		tx:      tx,
	}
	svc := newOrderServiceForTest(store)

	_, err := svc.PlaceOrder(context.Background(), placeOrderRequest())
	if !errors.Is(err, paymentErr) {
		t.Fatalf("expected wrapped payment error, got %v", err)
	}
	if store.committed {
		t.Error("transaction must roll back when the payment insert fails")
	}
	if len(tx.deletedCartItems) != 0 || len(tx.deletedCarts) != 0 {
		t.Error("cart deletion must not run after a payment failure")
	}
}
