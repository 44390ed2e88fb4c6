package tables

import "time"

type Product struct {
	tableName   struct{}       `bun:"table:products,alias:p"`
	Id          int64          `bun:"id,pk,autoincrement" json:"id"`
	Name        string         `bun:"name,notnull" json:"name"`
	Description string         `bun:"description" json:"description,omitempty"`
	Price       float64        `bun:"price,notnull" json:"price"`
	Stock       int            `bun:"stock,notnull,default:0" json:"stock"`
	CategoryId  *int64         `bun:"category_id" json:"category_id,omitempty"`
	SkinTypeId  *int64         `bun:"skin_type_id" json:"skin_type_id,omitempty"`
	CreatedAt   time.Time      `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,notnull,default:now()" json:"updated_at"`
	Images      []ProductImage `bun:"rel:has-many,join:id=product_id" json:"images,omitempty"`
}

// ProductImage holds a URL served by the external image-hosting provider.
type ProductImage struct {
	tableName struct{} `bun:"table:product_images,alias:pi"`
	Id        int64    `bun:"id,pk,autoincrement" json:"id"`
	ProductId int64    `bun:"product_id,notnull" json:"product_id"`
	URL       string   `bun:"url,notnull" json:"url"`
	IsPrimary bool     `bun:"is_primary,notnull,default:false" json:"is_primary"`
}
