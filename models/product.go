package models

import "time"

// MinPriceMinorUnits is the lowest price a product may carry, in minor
// currency units. Stripe rejects charges below its per-currency minimum,
// so the floor is enforced at the catalog edge.
const MinPriceMinorUnits = 50

// Product is a catalog entry. ID is a stable slug chosen at creation time
// and used by carts and order item snapshots.
type Product struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Price     int64     `gorm:"not null" json:"price"` // minor currency units
	Inventory int       `gorm:"not null;default:0" json:"inventory"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
