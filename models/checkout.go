package models

import (
	"fmt"
	"strings"
)

// Quantity bounds for a single cart line. Requested quantities are clamped
// into this range before stock checks.
const (
	MinLineQuantity = 1
	MaxLineQuantity = 99
)

// CartLine is a client-supplied cart entry. It never carries a price; prices
// are always re-resolved from the catalog at checkout time.
type CartLine struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// CheckoutRequest is the POST /checkout payload.
type CheckoutRequest struct {
	Items []CartLine `json:"items" binding:"required,dive"`
}

// CheckoutResponse carries the order correlation id and the hosted payment URL.
type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	CheckoutURL string `json:"checkout_url"`
}

// Cart rejection reasons, one per offending line.
const (
	ReasonProductUnavailable = "product_unavailable"
	ReasonOutOfStock         = "out_of_stock"
	ReasonInsufficientStock  = "insufficient_stock"
)

// RejectedItem names one cart line the resolver refused and why.
type RejectedItem struct {
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
}

// CartRejectionError is returned when one or more cart lines cannot be
// resolved against the catalog. It lists every offending line so the client
// can re-render the cart in one pass.
type CartRejectionError struct {
	Items []RejectedItem `json:"rejected_items"`
}

func (e *CartRejectionError) Error() string {
	parts := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		parts = append(parts, fmt.Sprintf("%s: %s", it.ProductID, it.Reason))
	}
	return "cart rejected: " + strings.Join(parts, ", ")
}

// PaymentDetails carries the customer/shipping fields extracted from a
// verified payment confirmation event.
type PaymentDetails struct {
	SessionID       string
	CustomerName    string
	CustomerEmail   string
	ShippingLine1   string
	ShippingCity    string
	ShippingPostal  string
	ShippingCountry string
}
