package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/QuaKeyz/reselling-store/models"
	"github.com/QuaKeyz/reselling-store/pkg/clock"
	"github.com/QuaKeyz/reselling-store/repository"
)

// CheckoutService drives checkout initiation: resolve the cart, open a
// payment session correlated by a fresh order id, and record the pending
// order in the ledger.
type CheckoutService struct {
	resolver *ResolverService
	ledger   repository.OrderLedger
	gateway  PaymentGateway
	clock    clock.Clock
	logger   *zap.Logger
}

func NewCheckoutService(resolver *ResolverService, ledger repository.OrderLedger, gateway PaymentGateway, clk clock.Clock, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		resolver: resolver,
		ledger:   ledger,
		gateway:  gateway,
		clock:    clk,
		logger:   logger,
	}
}

// Checkout validates and prices the cart, creates the payment session, and
// persists the pending order with the session id already recorded. The order
// id is generated locally before the session exists, so the session metadata
// and the ledger record agree on the correlation id. If the ledger write
// fails the session URL is never returned, so the orphaned session can only
// produce an unknown-order confirmation, which is acknowledged and dropped.
func (s *CheckoutService) Checkout(ctx context.Context, lines []models.CartLine) (*models.CheckoutResponse, error) {
	items, subtotal, err := s.resolver.Resolve(ctx, lines)
	if err != nil {
		return nil, err
	}

	orderID := uuid.NewString()
	sessionID, sessionURL, err := s.gateway.CreateCheckoutSession(orderID, items)
	if err != nil {
		s.logger.Error("Failed to create checkout session",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return nil, err
	}

	order := &models.Order{
		ID:              orderID,
		Status:          models.OrderStatusPending,
		Items:           items,
		Subtotal:        subtotal,
		StripeSessionID: sessionID,
		CreatedAt:       s.clock.Now(),
	}
	if err := s.ledger.Create(ctx, order); err != nil {
		s.logger.Error("Failed to persist pending order",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Checkout initiated",
		zap.String("order_id", orderID),
		zap.String("session_id", sessionID),
		zap.Int64("subtotal", subtotal),
	)
	return &models.CheckoutResponse{OrderID: orderID, CheckoutURL: sessionURL}, nil
}
