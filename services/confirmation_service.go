package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/QuaKeyz/reselling-store/models"
	"github.com/QuaKeyz/reselling-store/pkg/clock"
	"github.com/QuaKeyz/reselling-store/repository"
)

// ConfirmationService applies verified payment-completed events to the
// ledger. Delivery is at-least-once, so the transition is modeled as an
// idempotent state change keyed by the order correlation id: only the call
// that actually moves the order from pending to paid decrements inventory.
type ConfirmationService struct {
	ledger   repository.OrderLedger
	products repository.ProductRepository
	clock    clock.Clock
	logger   *zap.Logger
}

func NewConfirmationService(ledger repository.OrderLedger, products repository.ProductRepository, clk clock.Clock, logger *zap.Logger) *ConfirmationService {
	return &ConfirmationService{
		ledger:   ledger,
		products: products,
		clock:    clk,
		logger:   logger,
	}
}

// Confirm transitions the order to paid and decrements inventory for its
// items. Unknown order ids and redeliveries are acknowledged as no-ops. The
// returned bool reports whether this call applied the transition.
//
// A non-nil error means the event must be treated as undelivered; the caller
// responds non-2xx so the processor redelivers. Redelivery after a committed
// transition is safe: the status check turns it into a no-op.
func (s *ConfirmationService) Confirm(ctx context.Context, orderID string, details models.PaymentDetails) (bool, error) {
	order, applied, err := s.ledger.Update(ctx, orderID, func(o *models.Order) (bool, error) {
		if o.Status == models.OrderStatusPaid {
			return false, nil
		}
		o.Status = models.OrderStatusPaid
		paidAt := s.clock.Now()
		o.PaidAt = &paidAt
		o.CustomerName = details.CustomerName
		o.CustomerEmail = details.CustomerEmail
		o.ShippingLine1 = details.ShippingLine1
		o.ShippingCity = details.ShippingCity
		o.ShippingPostal = details.ShippingPostal
		o.ShippingCountry = details.ShippingCountry
		if o.StripeSessionID == "" {
			o.StripeSessionID = details.SessionID
		}
		return true, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			// Foreign or orphaned session; acknowledge so the processor
			// stops redelivering.
			s.logger.Warn("Payment confirmation for unknown order",
				zap.String("order_id", orderID),
				zap.String("session_id", details.SessionID),
			)
			return false, nil
		}
		return false, err
	}
	if !applied {
		s.logger.Info("Duplicate payment confirmation ignored",
			zap.String("order_id", orderID),
		)
		return false, nil
	}

	for _, item := range order.Items {
		if product, perr := s.products.FindByID(ctx, item.ProductID); perr == nil && product.Inventory < item.Quantity {
			// Advisory reservation lost the last-unit race; stock floors at
			// zero and the shortfall is reconciled out-of-band.
			s.logger.Warn("Inventory oversold",
				zap.String("order_id", orderID),
				zap.String("product_id", item.ProductID),
				zap.Int("requested", item.Quantity),
				zap.Int("available", product.Inventory),
			)
		}
		if err := s.products.DecrementInventory(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error("Failed to decrement inventory",
				zap.String("order_id", orderID),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return true, err
		}
	}

	s.logger.Info("Order paid",
		zap.String("order_id", orderID),
		zap.Int64("subtotal", order.Subtotal),
	)
	return true, nil
}
