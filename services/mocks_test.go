package services_test

import (
	"context"
	"errors"
	"sync"

	"github.com/QuaKeyz/reselling-store/models"
	"github.com/QuaKeyz/reselling-store/repository"
)

// mockProductRepo is an in-memory catalog store used across service tests.
type mockProductRepo struct {
	mu         sync.Mutex
	products   map[string]*models.Product
	decrements map[string]int // per-product count of DecrementInventory calls
	failNext   error
}

func newMockProductRepo(products ...*models.Product) *mockProductRepo {
	m := &mockProductRepo{
		products:   make(map[string]*models.Product),
		decrements: make(map[string]int),
	}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) FindActive(_ context.Context, _, _ int) ([]models.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Product
	for _, p := range m.products {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) Create(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) Update(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return repository.ErrProductNotFound
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) DecrementInventory(_ context.Context, id string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	p, ok := m.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.Inventory -= qty
	if p.Inventory < 0 {
		p.Inventory = 0
	}
	m.decrements[id]++
	return nil
}

func (m *mockProductRepo) inventory(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].Inventory
}

func (m *mockProductRepo) decrementCount(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.decrements[id]
}

// mockGateway records created sessions and can be told to fail.
type mockGateway struct {
	mu       sync.Mutex
	sessions []string // order ids passed to CreateCheckoutSession
	fail     bool
}

var errGatewayDown = errors.New("payment gateway unavailable")

func (g *mockGateway) CreateCheckoutSession(orderID string, items []models.OrderItem) (string, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return "", "", errGatewayDown
	}
	g.sessions = append(g.sessions, orderID)
	return "cs_test_" + orderID, "https://checkout.stripe.test/" + orderID, nil
}

func activeProduct(id, name string, price int64, inventory int) *models.Product {
	return &models.Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Inventory: inventory,
		Active:    true,
	}
}
