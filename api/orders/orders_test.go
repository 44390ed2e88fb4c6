package orders

import (
	"aureliaskin_server/lib"
	"aureliaskin_server/services"
	"aureliaskin_server/structs"
	"aureliaskin_server/structs/tables"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type stubCheckoutTx struct {
	cart         *tables.Cart
	decrementErr error
	nextID       int64
}

func (tx *stubCheckoutTx) InsertOrder(ctx context.Context, order *tables.Order) error {
	tx.nextID++
	order.Id = tx.nextID
	return nil
}

func (tx *stubCheckoutTx) InsertOrderItem(ctx context.Context, item *tables.OrderItem) error {
	tx.nextID++
	item.Id = tx.nextID
	return nil
}

func (tx *stubCheckoutTx) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	return tx.decrementErr
}

func (tx *stubCheckoutTx) InsertPayment(ctx context.Context, payment *tables.Payment) error {
	tx.nextID++
	payment.Id = tx.nextID
	return nil
}

func (tx *stubCheckoutTx) FindCart(ctx context.Context, profileID int64) (*tables.Cart, error) {
	return tx.cart, nil
}

func (tx *stubCheckoutTx) DeleteCartItems(ctx context.Context, cartID int64) (int, error) {
	return 1, nil
}

func (tx *stubCheckoutTx) DeleteCart(ctx context.Context, cartID int64) error {
	return nil
}

type stubOrderStore struct {
	profile *tables.Profile
	tx      *stubCheckoutTx
}

func (s *stubOrderStore) ResolveProfile(ctx context.Context, userID uuid.UUID) (*tables.Profile, error) {
	return s.profile, nil
}

func (s *stubOrderStore) RunCheckout(ctx context.Context, fn func(tx services.CheckoutTx) error) error {
	return fn(s.tx)
}

type stubReceiptStore struct {
	order *tables.Order
}

func (s *stubReceiptStore) FindOrderByNumber(ctx context.Context, orderNumber string) (*tables.Order, error) {
	return s.order, nil
}

func (s *stubReceiptStore) FindPayment(ctx context.Context, orderID int64) (*tables.Payment, error) {
	return nil, nil
}

func (s *stubReceiptStore) FindPaymentMethod(ctx context.Context, id int64) (*tables.PaymentMethod, error) {
	return nil, nil
}

func (s *stubReceiptStore) ListOrderItems(ctx context.Context, orderID int64) ([]tables.OrderItem, error) {
	return nil, nil
}

func (s *stubReceiptStore) FindPrimaryImage(ctx context.Context, productID int64) (*tables.ProductImage, error) {
	return nil, nil
}

type noopReceiptCache struct{}

func (noopReceiptCache) GetReceipt(orderNumber string) (*structs.Receipt, error) { return nil, nil }
func (noopReceiptCache) SetReceipt(orderNumber string, receipt *structs.Receipt) error {
	return nil
}

func newTestRouter(orderStore services.OrderStore, receiptStore services.ReceiptStore) chi.Router {
	logger := gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error"))))
	cfg := &structs.Config{
		Orders: &structs.OrdersConfig{NumberPrefix: "AUR", EstimatedDelivery: "3-5 business days"},
		Email:  &structs.EmailConfig{Enabled: false},
	}

	orderService := services.NewOrderService(logger, cfg, orderStore, services.NewEmailService(logger, cfg))
	receiptService := services.NewReceiptService(logger, cfg, receiptStore, noopReceiptCache{})

	r := chi.NewRouter()
	NewOrderRoutesManager(orderService, receiptService).RegisterRoutes(r)
	return r
}

const checkoutBody = `{
	"user_id": "6f1c1f1e-8a9f-4a53-9a25-0db2a9e9a111",
	"address": {
		"recipient_name": "Maya Tan",
		"phone_number": "+6281234567890",
		"address_line1": "Jl. Melati 12",
		"city": "Jakarta",
		"province": "DKI Jakarta",
		"postal_code": "10110",
		"country": "ID"
	},
	"payment_method_id": 2,
	"items": [
		{"id": 11, "name": "Hydrating Serum", "price": 24.5, "quantity": 2}
	],
	"subtotal": 49.0,
	"shipping": 5.0,
	"tax": 4.9,
	"total": 58.9
}`

func TestPlaceOrderEndpointSuccess(t *testing.T) {
	store := &stubOrderStore{
		profile: &tables.Profile{Id: 5, UserId: uuid.New()},
		tx:      &stubCheckoutTx{cart: &tables.Cart{Id: 7, ProfileId: 5}},
	}
	router := newTestRouter(store, &stubReceiptStore{})

	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(checkoutBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "order_number") {
		t.Errorf("response body missing order_number: %s", rec.Body.String())
	}
}

func TestPlaceOrderEndpointInvalidBody(t *testing.T) {
	store := &stubOrderStore{
		profile: &tables.Profile{Id: 5, UserId: uuid.New()},
		tx:      &stubCheckoutTx{cart: &tables.Cart{Id: 7}},
	}
	router := newTestRouter(store, &stubReceiptStore{})

	payload := strings.Replace(checkoutBody,
		`"items": [
		{"id": 11, "name": "Hydrating Serum", "price": 24.5, "quantity": 2}
	]`, `"items": []`, 1)
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
}

func TestPlaceOrderEndpointDecodeErrorDetail(t *testing.T) {
	store := &stubOrderStore{
		profile: &tables.Profile{Id: 5, UserId: uuid.New()},
		tx:      &stubCheckoutTx{cart: &tables.Cart{Id: 7}},
	}
	router := newTestRouter(store, &stubReceiptStore{})

	payload := strings.Replace(checkoutBody, `"total": 58.9`, `"total": 58.9, "bogus": true`, 1)
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "bogus") {
		t.Errorf("400 body does not name the offending field: %s", rec.Body.String())
	}
}

func TestPlaceOrderEndpointProfileNotFound(t *testing.T) {
	store := &stubOrderStore{
		profile: nil,
		tx:      &stubCheckoutTx{},
	}
	router := newTestRouter(store, &stubReceiptStore{})

	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(checkoutBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body: %s", rec.Code, rec.Body.String())
	}
}

func TestPlaceOrderEndpointInsufficientStock(t *testing.T) {
	store := &stubOrderStore{
		profile: &tables.Profile{Id: 5, UserId: uuid.New()},
		tx: &stubCheckoutTx{
			cart:         &tables.Cart{Id: 7, ProfileId: 5},
			decrementErr: lib.ErrInsufficientStock,
		},
	}
	router := newTestRouter(store, &stubReceiptStore{})

	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(checkoutBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body: %s", rec.Code, rec.Body.String())
	}
}

func TestGetReceiptEndpointSuccess(t *testing.T) {
	receiptStore := &stubReceiptStore{
		order: &tables.Order{
			Id:            42,
			OrderNumber:   "AUR-1756600000000-K3PQ",
			RecipientName: "Maya Tan",
			City:          "Jakarta",
			TotalAmount:   58.9,
			CreatedAt:     time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC),
		},
	}
	router := newTestRouter(&stubOrderStore{tx: &stubCheckoutTx{}}, receiptStore)

	req := httptest.NewRequest("GET", "/api/orders/AUR-1756600000000-K3PQ", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "AUR-1756600000000-K3PQ") {
		t.Errorf("response missing order number: %s", body)
	}
	if !strings.Contains(body, services.UnknownPaymentMethod) {
		t.Errorf("missing payment falls back to %q: %s", services.UnknownPaymentMethod, body)
	}
}

func TestGetReceiptEndpointNotFound(t *testing.T) {
	router := newTestRouter(&stubOrderStore{tx: &stubCheckoutTx{}}, &stubReceiptStore{order: nil})

	req := httptest.NewRequest("GET", "/api/orders/AUR-0-XXXX", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body: %s", rec.Code, rec.Body.String())
	}
}
