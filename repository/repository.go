package repository

import (
	"context"
	"errors"

	"github.com/QuaKeyz/reselling-store/models"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrSubtotalMismatch = errors.New("order subtotal does not match item snapshots")
)

// TransitionFunc mutates an order in place. Returning false leaves the stored
// record untouched; nothing is persisted and no write occurs.
type TransitionFunc func(order *models.Order) (bool, error)

// OrderLedger is the durable store of orders. All mutations funnel through a
// single serialization point per implementation, so a read-modify-write cycle
// never interleaves with another writer. A nil error from Create or Update
// means the change is durably persisted.
type OrderLedger interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	// FindAll returns orders newest-first.
	FindAll(ctx context.Context) ([]models.Order, error)
	// Update applies fn to the stored order under the ledger's write lock and
	// persists the result if fn reports a change. Concurrent updates to the
	// same order serialize; neither observes the other's pre-image.
	Update(ctx context.Context, id string, fn TransitionFunc) (*models.Order, bool, error)
}

// ProductRepository is the catalog store. The core only needs reads plus the
// atomic inventory decrement; the CRUD operations serve the admin surface.
type ProductRepository interface {
	FindActive(ctx context.Context, page, limit int) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	// DecrementInventory atomically subtracts qty from the product's
	// inventory, flooring at zero.
	DecrementInventory(ctx context.Context, id string, qty int) error
}

// validateOrder enforces the ledger's admission contract: at least one item
// and a subtotal equal to the snapshot sum.
func validateOrder(order *models.Order) error {
	if len(order.Items) == 0 {
		return ErrEmptyOrder
	}
	if order.Subtotal != models.ItemsSubtotal(order.Items) {
		return ErrSubtotalMismatch
	}
	return nil
}
