package structs

import "github.com/google/uuid"

// PlaceOrderRequest is the checkout payload accepted by POST /api/orders.
// Every field is schema-validated before any write happens; an empty items
// list is rejected outright.
type PlaceOrderRequest struct {
	UserID          uuid.UUID          `json:"user_id" validate:"required"`
	Address         ShippingAddress    `json:"address" validate:"required"`
	PaymentMethodID int64              `json:"payment_method_id" validate:"required,gt=0"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Subtotal        float64            `json:"subtotal" validate:"gte=0"`
	Shipping        float64            `json:"shipping" validate:"gte=0"`
	Tax             float64            `json:"tax" validate:"gte=0"`
	Total           float64            `json:"total" validate:"required,gt=0"`
}

type ShippingAddress struct {
	RecipientName string `json:"recipient_name" validate:"required,min=2,max=100"`
	PhoneNumber   string `json:"phone_number" validate:"required,min=6,max=20"`
	AddressLine1  string `json:"address_line1" validate:"required,min=3,max=200"`
	AddressLine2  string `json:"address_line2,omitempty" validate:"omitempty,max=200"`
	City          string `json:"city" validate:"required,min=2,max=100"`
	Province      string `json:"province" validate:"required,min=2,max=100"`
	PostalCode    string `json:"postal_code" validate:"required,min=3,max=12"`
	Country       string `json:"country" validate:"required,min=2,max=60"`
}

type OrderItemRequest struct {
	ID       int64   `json:"id" validate:"required,gt=0"`
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderResult is the minimal success payload for a completed checkout.
type PlaceOrderResult struct {
	OrderID     int64  `json:"order_id"`
	OrderNumber string `json:"order_number"`
}

// Receipt is the customer-facing view assembled by GET /api/orders/{orderNumber}.
// Payment method and item images are optional enrichments: when the joined
// rows are missing the defaults below are substituted instead of failing.
type Receipt struct {
	OrderNumber       string          `json:"order_number"`
	Date              string          `json:"date"`
	Total             float64         `json:"total"`
	PaymentMethod     string          `json:"payment_method"`
	Items             []ReceiptItem   `json:"items"`
	Address           ShippingAddress `json:"address"`
	EstimatedDelivery string          `json:"estimated_delivery"`
}

type ReceiptItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
}
