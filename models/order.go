package models

import (
	"time"
)

// Order status values. The only legal transition is pending -> paid.
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// Order is the ledger entity. ID doubles as the correlation id embedded in
// the Stripe Checkout session metadata, so the webhook can find its way back.
type Order struct {
	ID              string      `gorm:"primaryKey;type:uuid" json:"id"`
	Status          string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal        int64       `gorm:"not null" json:"subtotal"`
	StripeSessionID string      `json:"stripe_session_id,omitempty"`
	CustomerName    string      `json:"customer_name,omitempty"`
	CustomerEmail   string      `json:"customer_email,omitempty"`
	ShippingLine1   string      `json:"shipping_line1,omitempty"`
	ShippingCity    string      `json:"shipping_city,omitempty"`
	ShippingPostal  string      `json:"shipping_postal,omitempty"`
	ShippingCountry string      `json:"shipping_country,omitempty"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	PaidAt          *time.Time  `json:"paid_at,omitempty"`
}

// OrderItem snapshots the product name and unit price at order-creation time.
// Later catalog edits never touch order history.
type OrderItem struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   string `gorm:"type:uuid;not null;index" json:"-"`
	ProductID string `gorm:"type:varchar(64);not null" json:"product_id"`
	Name      string `gorm:"not null" json:"name"`
	UnitPrice int64  `gorm:"not null" json:"unit_price"`
	Quantity  int    `gorm:"not null" json:"quantity"`
}

// ItemsSubtotal recomputes the snapshot sum. Used to validate orders before
// they are accepted into the ledger.
func ItemsSubtotal(items []OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}
