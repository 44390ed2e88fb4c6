package tables

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the buyer identity row. UserId is the external auth-system
// identifier; Id is the internal key the rest of the schema references.
type Profile struct {
	tableName struct{}  `bun:"table:profiles,alias:pr"`
	Id        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserId    uuid.UUID `bun:"user_id,notnull,unique,type:uuid" json:"user_id"`
	FullName  string    `bun:"full_name" json:"full_name,omitempty"`
	Email     string    `bun:"email" json:"email,omitempty"`
	Phone     string    `bun:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull,default:now()" json:"created_at"`
}
