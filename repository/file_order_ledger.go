package repository

import (
	"context"
	"sort"
	"time"

	"github.com/QuaKeyz/reselling-store/models"
)

// FileOrderLedger implements OrderLedger on a FileStore. The store's write
// lock is the single serialization point for all order mutations.
type FileOrderLedger struct {
	store *FileStore
}

// NewFileOrderLedger creates a new instance of FileOrderLedger
func NewFileOrderLedger(store *FileStore) OrderLedger {
	return &FileOrderLedger{store: store}
}

// Create appends a new order to the store.
func (r *FileOrderLedger) Create(ctx context.Context, order *models.Order) error {
	if err := validateOrder(order); err != nil {
		return err
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	return r.store.update(func(doc *storeDocument) error {
		doc.Orders = append(doc.Orders, *order)
		return nil
	})
}

// FindByID retrieves a single order.
func (r *FileOrderLedger) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var found *models.Order
	r.store.view(func(doc storeDocument) {
		for i := range doc.Orders {
			if doc.Orders[i].ID == id {
				o := doc.Orders[i]
				found = &o
				break
			}
		}
	})
	if found == nil {
		return nil, ErrOrderNotFound
	}
	return found, nil
}

// FindAll retrieves all orders, newest first.
func (r *FileOrderLedger) FindAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	r.store.view(func(doc storeDocument) {
		orders = make([]models.Order, len(doc.Orders))
		copy(orders, doc.Orders)
	})
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// Update applies fn to the stored order under the store's write lock and
// persists the result only when fn reports a change.
func (r *FileOrderLedger) Update(ctx context.Context, id string, fn TransitionFunc) (*models.Order, bool, error) {
	var (
		out     models.Order
		changed bool
	)
	err := r.store.update(func(doc *storeDocument) error {
		for i := range doc.Orders {
			if doc.Orders[i].ID != id {
				continue
			}
			var err error
			changed, err = fn(&doc.Orders[i])
			if err != nil {
				return err
			}
			out = doc.Orders[i]
			return nil
		}
		return ErrOrderNotFound
	})
	if err != nil {
		return nil, false, err
	}
	return &out, changed, nil
}
