package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/QuaKeyz/reselling-store/models"
)

// GormOrderLedger implements OrderLedger on a relational store. Postgres
// row locks are the serialization point: Update takes the order row
// FOR UPDATE, so concurrent transitions on the same order queue up behind
// each other and always see the committed pre-image.
type GormOrderLedger struct {
	db *gorm.DB
}

// NewGormOrderLedger creates a new instance of GormOrderLedger
func NewGormOrderLedger(db *gorm.DB) OrderLedger {
	return &GormOrderLedger{db: db}
}

// Create persists a new order together with its item snapshots.
func (r *GormOrderLedger) Create(ctx context.Context, order *models.Order) error {
	if err := validateOrder(order); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByID retrieves a single order with its items.
func (r *GormOrderLedger) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll retrieves all orders, newest first.
func (r *GormOrderLedger) FindAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Update applies fn to the stored order inside a transaction holding the
// order row FOR UPDATE, and persists the result only when fn reports a change.
func (r *GormOrderLedger) Update(ctx context.Context, id string, fn TransitionFunc) (*models.Order, bool, error) {
	var (
		out     models.Order
		changed bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		var err error
		changed, err = fn(&order)
		if err != nil {
			return err
		}
		if changed {
			// Items are immutable snapshots; only the order row changes.
			if err := tx.Omit(clause.Associations).Save(&order).Error; err != nil {
				return err
			}
		}
		out = order
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &out, changed, nil
}
