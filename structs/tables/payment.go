package tables

import "time"

type Payment struct {
	tableName       struct{}      `bun:"table:payments,alias:pay"`
	Id              int64         `bun:"id,pk,autoincrement" json:"id"`
	OrderId         int64         `bun:"order_id,notnull" json:"order_id"`
	PaymentMethodId int64         `bun:"payment_method_id,notnull" json:"payment_method_id"`
	Amount          float64       `bun:"amount,notnull" json:"amount"`
	Status          PaymentStatus `bun:"status,notnull,default:'pending'" json:"status"`
	CreatedAt       time.Time     `bun:"created_at,notnull,default:now()" json:"created_at"`
}

type PaymentMethod struct {
	tableName struct{} `bun:"table:payment_methods,alias:pm"`
	Id        int64    `bun:"id,pk,autoincrement" json:"id"`
	Name      string   `bun:"name,notnull" json:"name"`
	IsActive  bool     `bun:"is_active,notnull,default:true" json:"is_active"`
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)
