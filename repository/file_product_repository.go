package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/QuaKeyz/reselling-store/models"
)

// FileProductRepository implements ProductRepository on a FileStore.
type FileProductRepository struct {
	store *FileStore
}

// NewFileProductRepository creates a new instance of FileProductRepository
func NewFileProductRepository(store *FileStore) ProductRepository {
	return &FileProductRepository{store: store}
}

// FindActive retrieves visible products with pagination
func (r *FileProductRepository) FindActive(ctx context.Context, page, limit int) ([]models.Product, int64, error) {
	var active []models.Product
	r.store.view(func(doc storeDocument) {
		for _, p := range doc.Products {
			if p.Active {
				active = append(active, p)
			}
		}
	})
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	total := int64(len(active))
	offset := (page - 1) * limit
	if offset >= len(active) {
		return []models.Product{}, total, nil
	}
	end := offset + limit
	if end > len(active) {
		end = len(active)
	}
	return active[offset:end], total, nil
}

// FindByID retrieves a product regardless of visibility.
func (r *FileProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var found *models.Product
	r.store.view(func(doc storeDocument) {
		for i := range doc.Products {
			if doc.Products[i].ID == id {
				p := doc.Products[i]
				found = &p
				break
			}
		}
	})
	if found == nil {
		return nil, ErrProductNotFound
	}
	return found, nil
}

// Create adds a new product. The slug must be unused.
func (r *FileProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	return r.store.update(func(doc *storeDocument) error {
		for i := range doc.Products {
			if doc.Products[i].ID == product.ID {
				return fmt.Errorf("product %s already exists", product.ID)
			}
		}
		doc.Products = append(doc.Products, *product)
		return nil
	})
}

// Update replaces an existing product's mutable fields.
func (r *FileProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.store.update(func(doc *storeDocument) error {
		for i := range doc.Products {
			if doc.Products[i].ID != product.ID {
				continue
			}
			doc.Products[i].Name = product.Name
			doc.Products[i].Price = product.Price
			doc.Products[i].Inventory = product.Inventory
			doc.Products[i].Active = product.Active
			doc.Products[i].UpdatedAt = time.Now().UTC()
			return nil
		}
		return ErrProductNotFound
	})
}

// Delete removes a product from the catalog
func (r *FileProductRepository) Delete(ctx context.Context, id string) error {
	return r.store.update(func(doc *storeDocument) error {
		for i := range doc.Products {
			if doc.Products[i].ID == id {
				doc.Products = append(doc.Products[:i], doc.Products[i+1:]...)
				return nil
			}
		}
		return ErrProductNotFound
	})
}

// DecrementInventory subtracts qty under the store's write lock, flooring
// the count at zero.
func (r *FileProductRepository) DecrementInventory(ctx context.Context, id string, qty int) error {
	return r.store.update(func(doc *storeDocument) error {
		for i := range doc.Products {
			if doc.Products[i].ID != id {
				continue
			}
			doc.Products[i].Inventory -= qty
			if doc.Products[i].Inventory < 0 {
				doc.Products[i].Inventory = 0
			}
			doc.Products[i].UpdatedAt = time.Now().UTC()
			return nil
		}
		return ErrProductNotFound
	})
}
