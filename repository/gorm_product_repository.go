package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/QuaKeyz/reselling-store/models"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new instance of GormProductRepository
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

// FindActive retrieves visible products with pagination
func (r *GormProductRepository) FindActive(ctx context.Context, page, limit int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("active = ?", true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).
		Limit(limit).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// FindByID retrieves a product regardless of visibility.
func (r *GormProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Create creates a new product
func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Update updates an existing product
func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":      product.Name,
			"price":     product.Price,
			"inventory": product.Inventory,
			"active":    product.Active,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete removes a product from the catalog
func (r *GormProductRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DecrementInventory subtracts qty in a single statement so concurrent
// decrements never read a stale count. GREATEST floors the result at zero.
func (r *GormProductRepository) DecrementInventory(ctx context.Context, id string, qty int) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Update("inventory", gorm.Expr("GREATEST(inventory - ?, 0)", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
