package services

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/Soukthavilay/qr-order/models"
	aws_pkg "github.com/Soukthavilay/qr-order/pkg/aws"
	"github.com/Soukthavilay/qr-order/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrOrderNotFound is returned by ApplyKitchenEvent for an unknown order id.
var ErrOrderNotFound = errors.New("order not found")

const (
	minutesPerPortion   = 5
	minEstimatedMinutes = 10
	maxEstimatedMinutes = 60
)

// OrderService owns the order arena and its lifecycle.
type OrderService interface {
	// Load replaces the arena with what the mirror holds. No-op without one.
	Load(ctx context.Context) error
	PlaceOrder(ctx context.Context, sessionID string, req *models.PlaceOrderRequest) (*models.Order, *ServiceError)
	CreateOrder(ctx context.Context, cart models.Cart, req *models.PlaceOrderRequest) (*models.Order, *ServiceError)
	GetOrder(ctx context.Context, id string) (*models.Order, *ServiceError)
	ListOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, *ServiceError)
	Advance(ctx context.Context, id string, next models.OrderStatus) (*models.Order, *ServiceError)
	StartCooking(ctx context.Context, id string) (*models.Order, *ServiceError)
	MarkReady(ctx context.Context, id string) (*models.Order, *ServiceError)
	Serve(ctx context.Context, id string) (*models.Order, *ServiceError)
	KitchenQueue(ctx context.Context, now time.Time) []models.KitchenTicket
	Tracking(ctx context.Context) models.OrderTracking
	ApplyKitchenEvent(ctx context.Context, event models.KitchenEvent) error
}

type orderServiceImpl struct {
	repo   repository.OrderRepository
	carts  CartService
	events eventSink
	logger *zap.Logger

	mu     sync.RWMutex
	orders []models.Order
}

// NewOrderService creates a new OrderService. repo may be nil, in which case
// orders live only in memory.
func NewOrderService(repo repository.OrderRepository, carts CartService, opts EventOptions, logger *zap.Logger) OrderService {
	return &orderServiceImpl{
		repo:   repo,
		carts:  carts,
		events: opts.sink(logger),
		logger: logger,
		orders: []models.Order{},
	}
}

func (s *orderServiceImpl) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	s.logger.Info("Orders loaded", zap.Int("count", len(orders)))
	return nil
}

// PlaceOrder moves the session cart into a new order. The cart is emptied
// only if the order is created; otherwise its items are put back. A process
// exit between Take and CreateOrder loses the cart.
func (s *orderServiceImpl) PlaceOrder(ctx context.Context, sessionID string, req *models.PlaceOrderRequest) (*models.Order, *ServiceError) {
	cart, svcErr := s.carts.Take(ctx, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}
	if cart.IsEmpty() {
		return nil, badRequest(models.ErrEmptyCart.Error())
	}

	order, svcErr := s.CreateOrder(ctx, cart, req)
	if svcErr != nil {
		if restoreErr := s.carts.Restore(ctx, sessionID, cart); restoreErr != nil {
			s.logger.Error("Failed to restore cart after order failure",
				zap.String("session_id", sessionID), zap.String("error", restoreErr.Message))
		}
		return nil, svcErr
	}
	return order, nil
}

func estimateMinutes(items []models.OrderItem) int {
	portions := 0
	for _, it := range items {
		portions += it.Quantity
	}
	m := portions * minutesPerPortion
	if m < minEstimatedMinutes {
		return minEstimatedMinutes
	}
	if m > maxEstimatedMinutes {
		return maxEstimatedMinutes
	}
	return m
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, cart models.Cart, req *models.PlaceOrderRequest) (*models.Order, *ServiceError) {
	if cart.IsEmpty() {
		return nil, badRequest(models.ErrEmptyCart.Error())
	}
	id, err := uuid.NewV7()
	if err != nil {
		s.logger.Error("Failed to generate order id", zap.Error(err))
		return nil, internal("Failed to create order")
	}

	now := time.Now()
	items := models.SnapshotItems(cart.Items, now)
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.UnitPrice).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	estimate := estimateMinutes(items)
	order := models.Order{
		ID:               id.String(),
		TableNumber:      req.TableNumber,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		Items:            items,
		Total:            total.Round(2).InexactFloat64(),
		Status:           models.StatusReceived,
		EstimatedMinutes: &estimate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	s.mu.Lock()
	if s.repo != nil {
		mirror := order.Clone()
		if err := s.repo.Create(ctx, &mirror); err != nil {
			s.mu.Unlock()
			s.logger.Error("Failed to persist order", zap.String("order_id", order.ID), zap.Error(err))
			return nil, internal("Failed to create order")
		}
	}
	next := make([]models.Order, len(s.orders), len(s.orders)+1)
	copy(next, s.orders)
	s.orders = append(next, order)
	s.mu.Unlock()

	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("table", order.TableNumber),
		zap.Float64("total", order.Total))
	s.events.publish(ctx, models.EventOrderCreated, models.OrderEvent{
		Type:        models.EventOrderCreated,
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		Status:      order.Status,
		Total:       order.Total,
		Timestamp:   now,
	})
	s.events.count(ctx, aws_pkg.MetricOrdersCreated, nil)

	out := order.Clone()
	return &out, nil
}

func (s *orderServiceImpl) GetOrder(_ context.Context, id string) (*models.Order, *ServiceError) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			out := o.Clone()
			return &out, nil
		}
	}
	return nil, notFound("Order not found")
}

// ListOrders returns orders oldest first. An empty status lists everything.
func (s *orderServiceImpl) ListOrders(_ context.Context, status models.OrderStatus) ([]models.Order, *ServiceError) {
	if status != "" && !status.IsValid() {
		return nil, badRequest("Invalid order status")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if status == "" || o.Status == status {
			out = append(out, o.Clone())
		}
	}
	return out, nil
}

// Advance moves order id to next. Illegal jumps fail with 409 and leave the
// arena untouched.
func (s *orderServiceImpl) Advance(ctx context.Context, id string, next models.OrderStatus) (*models.Order, *ServiceError) {
	updated, previous, err := s.advance(ctx, id, next)
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return nil, notFound("Order not found")
	case errors.Is(err, models.ErrInvalidTransition):
		return nil, conflict(models.ErrInvalidTransition.Error())
	case err != nil:
		s.logger.Error("Failed to update order status", zap.String("order_id", id), zap.Error(err))
		return nil, internal("Failed to update order status")
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(updated.Status)))
	s.events.publish(ctx, models.EventOrderStatusChanged, models.OrderEvent{
		Type:        models.EventOrderStatusChanged,
		OrderID:     updated.ID,
		TableNumber: updated.TableNumber,
		Status:      updated.Status,
		Previous:    previous,
		Total:       updated.Total,
		Timestamp:   updated.UpdatedAt,
	})
	if updated.Status == models.StatusServed {
		s.events.count(ctx, aws_pkg.MetricOrdersServed, nil)
	}
	return updated, nil
}

func (s *orderServiceImpl) advance(ctx context.Context, id string, next models.OrderStatus) (*models.Order, models.OrderStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.orders {
		if s.orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, "", ErrOrderNotFound
	}

	current := s.orders[idx]
	if err := models.ValidateTransition(current.Status, next); err != nil {
		return nil, "", err
	}

	now := time.Now()
	updated := current.Clone()
	updated.Status = next
	updated.UpdatedAt = now
	if next == models.StatusServed {
		actual := updated.ElapsedMinutes(now)
		updated.ActualMinutes = &actual
	}

	if s.repo != nil {
		mirror := updated.Clone()
		if err := s.repo.UpdateStatus(ctx, &mirror); err != nil {
			return nil, "", err
		}
	}

	orders := make([]models.Order, len(s.orders))
	copy(orders, s.orders)
	orders[idx] = updated
	s.orders = orders

	out := updated.Clone()
	return &out, current.Status, nil
}

func (s *orderServiceImpl) StartCooking(ctx context.Context, id string) (*models.Order, *ServiceError) {
	return s.Advance(ctx, id, models.StatusInKitchen)
}

func (s *orderServiceImpl) MarkReady(ctx context.Context, id string) (*models.Order, *ServiceError) {
	return s.Advance(ctx, id, models.StatusReady)
}

func (s *orderServiceImpl) Serve(ctx context.Context, id string) (*models.Order, *ServiceError) {
	return s.Advance(ctx, id, models.StatusServed)
}

// KitchenQueue lists received and cooking orders, oldest first.
func (s *orderServiceImpl) KitchenQueue(_ context.Context, now time.Time) []models.KitchenTicket {
	s.mu.RLock()
	tickets := make([]models.KitchenTicket, 0)
	for _, o := range s.orders {
		if o.InKitchenQueue() {
			tickets = append(tickets, models.KitchenTicket{
				Order:          o.Clone(),
				ElapsedMinutes: o.ElapsedMinutes(now),
				Urgent:         o.IsUrgent(now),
			})
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.Before(tickets[j].CreatedAt)
	})
	return tickets
}

// Tracking splits orders into active and served, newest first.
func (s *orderServiceImpl) Tracking(_ context.Context) models.OrderTracking {
	tracking := models.OrderTracking{Active: []models.TrackedOrder{}, Completed: []models.TrackedOrder{}}

	s.mu.RLock()
	for i := len(s.orders) - 1; i >= 0; i-- {
		o := s.orders[i]
		tracked := models.TrackedOrder{Order: o.Clone(), Progress: o.Status.Progress()}
		if o.IsActive() {
			tracking.Active = append(tracking.Active, tracked)
		} else {
			tracking.Completed = append(tracking.Completed, tracked)
		}
	}
	s.mu.RUnlock()

	return tracking
}

// ApplyKitchenEvent applies a status event from the kitchen feed. It
// returns ErrOrderNotFound or a wrapped models.ErrInvalidTransition so the
// consumer can decide whether to retry.
func (s *orderServiceImpl) ApplyKitchenEvent(ctx context.Context, event models.KitchenEvent) error {
	if event.OrderID == "" || !event.Status.IsValid() {
		return models.ErrInvalidTransition
	}
	_, svcErr := s.Advance(ctx, event.OrderID, event.Status)
	if svcErr == nil {
		s.events.count(ctx, aws_pkg.MetricKitchenEvents, map[string]string{"Status": string(event.Status)})
		return nil
	}
	switch svcErr.StatusCode {
	case http.StatusNotFound:
		return ErrOrderNotFound
	case http.StatusConflict:
		return models.ErrInvalidTransition
	default:
		return svcErr
	}
}
