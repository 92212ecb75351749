package services_test

import (
	"context"
	"errors"
	"sync"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/repository"
	"github.com/Soukthavilay/qr-order/seed"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/Soukthavilay/qr-order/storage"
	"go.uber.org/zap"
)

var errMirrorDown = errors.New("mirror down")

// --- Mock SNS Publisher ---

type mockSNSPublisher struct {
	mu        sync.Mutex
	published []string
	bodies    [][]byte
}

func (m *mockSNSPublisher) Publish(_ context.Context, topicArn string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, topicArn)
	m.bodies = append(m.bodies, body)
	return nil
}

func (m *mockSNSPublisher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.published)
}

// --- Mock Metrics ---

type mockMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{counts: make(map[string]int)}
}

func (m *mockMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[name]++
	return nil
}

// --- Mock Order Repository ---

type mockOrderRepo struct {
	orders    map[string]models.Order
	createErr error
	updateErr error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]models.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, o *models.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.orders[o.ID] = *o
	return nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, o *models.Order) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	stored, ok := m.orders[o.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Status = o.Status
	stored.ActualMinutes = o.ActualMinutes
	m.orders[o.ID] = stored
	return nil
}

func (m *mockOrderRepo) FindAll(_ context.Context) ([]models.Order, error) {
	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

// --- Mock Reservation Repository ---

type mockReservationRepo struct {
	reservations map[string]models.Reservation
	err          error
}

func newMockReservationRepo() *mockReservationRepo {
	return &mockReservationRepo{reservations: make(map[string]models.Reservation)}
}

func (m *mockReservationRepo) Create(_ context.Context, r *models.Reservation) error {
	if m.err != nil {
		return m.err
	}
	m.reservations[r.ID] = *r
	return nil
}

func (m *mockReservationRepo) Update(_ context.Context, r *models.Reservation) error {
	if m.err != nil {
		return m.err
	}
	m.reservations[r.ID] = *r
	return nil
}

func (m *mockReservationRepo) FindAll(_ context.Context) ([]models.Reservation, error) {
	out := make([]models.Reservation, 0, len(m.reservations))
	for _, r := range m.reservations {
		out = append(out, r)
	}
	return out, nil
}

// --- Mock Review Repository ---

type mockReviewRepo struct {
	reviews map[string]models.Review
	err     error
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{reviews: make(map[string]models.Review)}
}

func (m *mockReviewRepo) Create(_ context.Context, r *models.Review) error {
	if m.err != nil {
		return m.err
	}
	m.reviews[r.ID] = *r
	return nil
}

func (m *mockReviewRepo) SetVerified(_ context.Context, id string, verified bool) error {
	if m.err != nil {
		return m.err
	}
	r, ok := m.reviews[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.Verified = verified
	m.reviews[id] = r
	return nil
}

func (m *mockReviewRepo) FindAll(_ context.Context) ([]models.Review, error) {
	out := make([]models.Review, 0, len(m.reviews))
	for _, r := range m.reviews {
		out = append(out, r)
	}
	return out, nil
}

// --- Mock Inventory Repository ---

type mockInventoryRepo struct {
	items       map[string]models.InventoryItem
	adjustments []models.StockAdjustment
	putErr      error
}

func newMockInventoryRepo() *mockInventoryRepo {
	return &mockInventoryRepo{items: make(map[string]models.InventoryItem)}
}

func (m *mockInventoryRepo) Put(_ context.Context, item *models.InventoryItem) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.items[item.ID] = *item
	return nil
}

func (m *mockInventoryRepo) FindAll(_ context.Context) ([]models.InventoryItem, error) {
	out := make([]models.InventoryItem, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	return out, nil
}

func (m *mockInventoryRepo) PutAdjustment(_ context.Context, adj *models.StockAdjustment) error {
	m.adjustments = append(m.adjustments, *adj)
	return nil
}

func (m *mockInventoryRepo) FindAdjustments(_ context.Context) ([]models.StockAdjustment, error) {
	out := make([]models.StockAdjustment, len(m.adjustments))
	copy(out, m.adjustments)
	return out, nil
}

// --- Helpers ---

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func newTestCartService(store storage.Store) services.CartService {
	return services.NewCartService(store, repository.NewMemoryMenuRepository(seed.MenuItems()), testLogger())
}

// newTestOrderService wires an order service over a memory cart store.
// repo may be nil.
func newTestOrderService(repo repository.OrderRepository, sns *mockSNSPublisher) (services.OrderService, services.CartService) {
	carts := newTestCartService(storage.NewMemoryStore())
	opts := services.EventOptions{Topic: "arn:aws:sns:us-east-1:000000000000:restaurant-events"}
	if sns != nil {
		opts.Publisher = sns
	}
	return services.NewOrderService(repo, carts, opts, testLogger()), carts
}

func addToCart(ctx context.Context, carts services.CartService, session, id string, qty int) {
	if _, svcErr := carts.AddItem(ctx, session, &models.AddToCartRequest{MenuItemID: id, Quantity: qty}); svcErr != nil {
		panic(svcErr.Message)
	}
}

func placeTestOrder(ctx context.Context, orders services.OrderService, carts services.CartService, table string) *models.Order {
	addToCart(ctx, carts, "session-"+table, "spring-rolls", 1)
	order, svcErr := orders.PlaceOrder(ctx, "session-"+table, &models.PlaceOrderRequest{TableNumber: table})
	if svcErr != nil {
		panic(svcErr.Message)
	}
	return order
}
