package services_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/QuaKeyz/reselling-store/models"
	"github.com/QuaKeyz/reselling-store/pkg/clock"
	"github.com/QuaKeyz/reselling-store/repository"
	"github.com/QuaKeyz/reselling-store/services"
)

func newFileLedger(t *testing.T) repository.OrderLedger {
	t.Helper()
	store, err := repository.OpenFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	return repository.NewFileOrderLedger(store)
}

func newCheckoutService(repo *mockProductRepo, ledger repository.OrderLedger, gateway *mockGateway) *services.CheckoutService {
	resolver := services.NewResolverService(repo)
	clk := clock.NewFixed(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	return services.NewCheckoutService(resolver, ledger, gateway, clk, zap.NewNop())
}

func TestCheckout_CreatesPendingOrder(t *testing.T) {
	repo := newMockProductRepo(activeProduct("shoe-1", "Shoe", 2000, 5))
	ledger := newFileLedger(t)
	gateway := &mockGateway{}
	svc := newCheckoutService(repo, ledger, gateway)

	resp, err := svc.Checkout(context.Background(), []models.CartLine{
		{ProductID: "shoe-1", Quantity: 2},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.OrderID)
	assert.Contains(t, resp.CheckoutURL, resp.OrderID)

	order, err := ledger.FindByID(context.Background(), resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, int64(4000), order.Subtotal)
	assert.Equal(t, "cs_test_"+resp.OrderID, order.StripeSessionID)
	assert.Nil(t, order.PaidAt)
	assert.Empty(t, order.CustomerEmail)

	// The session was created with the order id as correlation metadata.
	require.Len(t, gateway.sessions, 1)
	assert.Equal(t, resp.OrderID, gateway.sessions[0])
}

func TestCheckout_RejectedCartCreatesNoOrder(t *testing.T) {
	repo := newMockProductRepo(activeProduct("shoe-1", "Shoe", 2000, 5))
	ledger := newFileLedger(t)
	gateway := &mockGateway{}
	svc := newCheckoutService(repo, ledger, gateway)

	_, err := svc.Checkout(context.Background(), []models.CartLine{
		{ProductID: "shoe-1", Quantity: 10},
	})

	var rejection *models.CartRejectionError
	require.ErrorAs(t, err, &rejection)

	orders, err := ledger.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, gateway.sessions)
}

func TestCheckout_GatewayFailureCreatesNoOrder(t *testing.T) {
	repo := newMockProductRepo(activeProduct("shoe-1", "Shoe", 2000, 5))
	ledger := newFileLedger(t)
	gateway := &mockGateway{fail: true}
	svc := newCheckoutService(repo, ledger, gateway)

	_, err := svc.Checkout(context.Background(), []models.CartLine{
		{ProductID: "shoe-1", Quantity: 1},
	})
	require.ErrorIs(t, err, errGatewayDown)

	orders, err := ledger.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckout_SnapshotImmuneToLaterCatalogEdits(t *testing.T) {
	repo := newMockProductRepo(activeProduct("shoe-1", "Shoe", 2000, 5))
	ledger := newFileLedger(t)
	svc := newCheckoutService(repo, ledger, &mockGateway{})

	resp, err := svc.Checkout(context.Background(), []models.CartLine{
		{ProductID: "shoe-1", Quantity: 2},
	})
	require.NoError(t, err)

	// Reprice the product after the order exists.
	require.NoError(t, repo.Update(context.Background(), activeProduct("shoe-1", "Shoe Deluxe", 9000, 5)))

	order, err := ledger.FindByID(context.Background(), resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), order.Items[0].UnitPrice)
	assert.Equal(t, "Shoe", order.Items[0].Name)
	assert.Equal(t, int64(4000), order.Subtotal)
}
