package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80"

	"github.com/QuaKeyz/reselling-store/models"
	"github.com/QuaKeyz/reselling-store/repository"
)

// stubParser returns a canned event instead of verifying a real signature.
type stubParser struct {
	event stripe.Event
	err   error
}

func (p *stubParser) ParseWebhook(*http.Request) (stripe.Event, error) {
	return p.event, p.err
}

// stubGateway stands in for Stripe session creation.
type stubGateway struct {
	fail bool
}

var errGatewayDown = errors.New("payment gateway unavailable")

func (g *stubGateway) CreateCheckoutSession(orderID string, _ []models.OrderItem) (string, string, error) {
	if g.fail {
		return "", "", errGatewayDown
	}
	return "cs_test_" + orderID, "https://checkout.stripe.test/" + orderID, nil
}

// newTestStores opens a throwaway file store and returns both repositories
// backed by it.
func newTestStores(t *testing.T) (repository.OrderLedger, repository.ProductRepository) {
	t.Helper()
	store, err := repository.OpenFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	return repository.NewFileOrderLedger(store), repository.NewFileProductRepository(store)
}

func seedProduct(t *testing.T, repo repository.ProductRepository, id, name string, price int64, inventory int) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &models.Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Inventory: inventory,
		Active:    true,
	}))
}

func seedPendingOrder(t *testing.T, ledger repository.OrderLedger, id, productID string, qty int, unitPrice int64) {
	t.Helper()
	require.NoError(t, ledger.Create(context.Background(), &models.Order{
		ID:     id,
		Status: models.OrderStatusPending,
		Items: []models.OrderItem{
			{ProductID: productID, Name: "Shoe", UnitPrice: unitPrice, Quantity: qty},
		},
		Subtotal:  unitPrice * int64(qty),
		CreatedAt: time.Now().UTC(),
	}))
}
