package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/QuaKeyz/reselling-store/models"
	"github.com/QuaKeyz/reselling-store/pkg/apperrors"
	"github.com/QuaKeyz/reselling-store/repository"
)

// ResolverService turns an untrusted cart into authoritative, priced order
// items. Prices and names are re-read from the catalog on every call; the
// client's view of the cart is never trusted. Resolution has no side effects
// on inventory — stock is only decremented once payment is confirmed.
type ResolverService struct {
	products repository.ProductRepository
}

func NewResolverService(products repository.ProductRepository) *ResolverService {
	return &ResolverService{products: products}
}

// Resolve validates and prices every cart line. Quantities are clamped to
// [MinLineQuantity, MaxLineQuantity] before stock checks. All offending
// lines are collected into a single CartRejectionError so the client can fix
// the whole cart in one round trip.
func (s *ResolverService) Resolve(ctx context.Context, lines []models.CartLine) ([]models.OrderItem, int64, error) {
	if len(lines) == 0 {
		return nil, 0, apperrors.New(http.StatusBadRequest, "Cart must contain at least one item", nil)
	}

	items := make([]models.OrderItem, 0, len(lines))
	var rejected []models.RejectedItem

	for _, line := range lines {
		qty := line.Quantity
		if qty < models.MinLineQuantity {
			qty = models.MinLineQuantity
		}
		if qty > models.MaxLineQuantity {
			qty = models.MaxLineQuantity
		}

		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				rejected = append(rejected, models.RejectedItem{ProductID: line.ProductID, Reason: models.ReasonProductUnavailable})
				continue
			}
			return nil, 0, err
		}

		switch {
		case !product.Active:
			rejected = append(rejected, models.RejectedItem{ProductID: line.ProductID, Reason: models.ReasonProductUnavailable})
		case product.Inventory <= 0:
			rejected = append(rejected, models.RejectedItem{ProductID: line.ProductID, Reason: models.ReasonOutOfStock})
		case qty > product.Inventory:
			rejected = append(rejected, models.RejectedItem{ProductID: line.ProductID, Reason: models.ReasonInsufficientStock})
		default:
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.Price,
				Quantity:  qty,
			})
		}
	}

	if len(rejected) > 0 {
		return nil, 0, &models.CartRejectionError{Items: rejected}
	}
	return items, models.ItemsSubtotal(items), nil
}
