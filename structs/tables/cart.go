package tables

import "time"

// Cart is ephemeral pre-checkout state. A successful checkout deletes the
// items first and then the cart row itself.
type Cart struct {
	tableName struct{}  `bun:"table:carts,alias:c"`
	Id        int64     `bun:"id,pk,autoincrement" json:"id"`
	ProfileId int64     `bun:"profile_id,notnull" json:"profile_id"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}

type CartItem struct {
	tableName struct{} `bun:"table:cart_items,alias:ci"`
	Id        int64    `bun:"id,pk,autoincrement" json:"id"`
	CartId    int64    `bun:"cart_id,notnull" json:"cart_id"`
	ProductId int64    `bun:"product_id,notnull" json:"product_id"`
	Quantity  int      `bun:"quantity,notnull" json:"quantity"`
}
