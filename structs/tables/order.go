package tables

import "time"

type Order struct {
	tableName   struct{} `bun:"table:orders,alias:o"`
	Id          int64    `bun:"id,pk,autoincrement" json:"id"`
	ProfileId   int64    `bun:"profile_id,notnull" json:"profile_id"`
	OrderNumber string   `bun:"order_number,notnull,unique" json:"order_number"`

	// Shipping snapshot taken at checkout time
	RecipientName string `bun:"recipient_name,notnull" json:"recipient_name"`
	PhoneNumber   string `bun:"phone_number,notnull" json:"phone_number"`
	AddressLine1  string `bun:"address_line1,notnull" json:"address_line1"`
	AddressLine2  string `bun:"address_line2" json:"address_line2,omitempty"`
	City          string `bun:"city,notnull" json:"city"`
	Province      string `bun:"province,notnull" json:"province"`
	PostalCode    string `bun:"postal_code,notnull" json:"postal_code"`
	Country       string `bun:"country,notnull" json:"country"`

	TotalAmount float64     `bun:"total_amount,notnull" json:"total_amount"`
	Status      OrderStatus `bun:"status,notnull,default:'created'" json:"status"`
	CreatedAt   time.Time   `bun:"created_at,notnull,default:now()" json:"created_at"`
}

// OrderItem snapshots product name and unit price at purchase time so later
// catalog edits never rewrite history.
type OrderItem struct {
	tableName   struct{} `bun:"table:order_items,alias:oi"`
	Id          int64    `bun:"id,pk,autoincrement" json:"id"`
	OrderId     int64    `bun:"order_id,notnull" json:"order_id"`
	ProductId   int64    `bun:"product_id,notnull" json:"product_id"`
	ProductName string   `bun:"product_name,notnull" json:"product_name"`
	Price       float64  `bun:"price,notnull" json:"price"`
	Quantity    int      `bun:"quantity,notnull" json:"quantity"`
}

type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)
