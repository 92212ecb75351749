package models

import (
	"errors"
	"fmt"
	"time"
)

// OrderStatus is a state of the order lifecycle.
type OrderStatus string

const (
	StatusReceived  OrderStatus = "received"
	StatusInKitchen OrderStatus = "in_kitchen"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
)

// OrderStatuses lists the lifecycle in order.
var OrderStatuses = []OrderStatus{StatusReceived, StatusInKitchen, StatusReady, StatusServed}

// orderTransitions is the lifecycle FSM: state -> allowed next states.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusReceived:  {StatusInKitchen},
	StatusInKitchen: {StatusReady},
	StatusReady:     {StatusServed},
	StatusServed:    {},
}

// ErrInvalidTransition is returned for a status change the lifecycle forbids.
var ErrInvalidTransition = errors.New("invalid status transition")

// IsValid reports whether s is a known lifecycle state.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether the lifecycle allows s -> next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Next returns the single forward state, or false when s is terminal.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next := orderTransitions[s]
	if len(next) == 0 {
		return "", false
	}
	return next[0], true
}

// Progress is the tracking bar percentage for s.
func (s OrderStatus) Progress() int {
	switch s {
	case StatusInKitchen:
		return 33
	case StatusReady:
		return 66
	case StatusServed:
		return 100
	default:
		return 0
	}
}

// ValidateTransition returns ErrInvalidTransition wrapped with both states
// when from -> to is not allowed.
func ValidateTransition(from, to OrderStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// UrgentAfterMinutes is the age past which an active order is highlighted.
const UrgentAfterMinutes = 20

// Order is a placed order. Items and Total are frozen at creation.
type Order struct {
	ID               string      `json:"id" gorm:"type:varchar(64);primaryKey"`
	TableNumber      string      `json:"table_number" gorm:"type:varchar(32);index;not null"`
	CustomerName     string      `json:"customer_name,omitempty"`
	CustomerPhone    string      `json:"customer_phone,omitempty"`
	Items            []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Total            float64     `json:"total" gorm:"not null"`
	Status           OrderStatus `json:"status" gorm:"type:varchar(20);index;not null"`
	EstimatedMinutes *int        `json:"estimated_minutes,omitempty"`
	ActualMinutes    *int        `json:"actual_minutes,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// OrderItem is a by-value copy of a cart line taken when the order is placed.
type OrderItem struct {
	ID         uint    `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID    string  `json:"-" gorm:"type:varchar(64);index;not null"`
	MenuItemID string  `json:"menu_item_id" gorm:"type:varchar(64);not null"`
	Name       string  `json:"name" gorm:"not null"`
	Category   string  `json:"category"`
	ListPrice  float64 `json:"list_price"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity" gorm:"not null"`
}

// LineTotal is unit price × quantity.
func (i OrderItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// ElapsedMinutes is the whole number of minutes since creation.
func (o Order) ElapsedMinutes(now time.Time) int {
	d := now.Sub(o.CreatedAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// IsUrgent reports whether the order has waited longer than
// UrgentAfterMinutes.
func (o Order) IsUrgent(now time.Time) bool {
	return o.ElapsedMinutes(now) > UrgentAfterMinutes
}

// IsActive reports whether the order has not been served yet.
func (o Order) IsActive() bool {
	return o.Status != StatusServed
}

// InKitchenQueue reports whether the kitchen display shows the order.
func (o Order) InKitchenQueue() bool {
	return o.Status == StatusReceived || o.Status == StatusInKitchen
}

// Clone returns a deep copy so the caller can never alias a stored order.
func (o Order) Clone() Order {
	items := make([]OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	if o.EstimatedMinutes != nil {
		v := *o.EstimatedMinutes
		o.EstimatedMinutes = &v
	}
	if o.ActualMinutes != nil {
		v := *o.ActualMinutes
		o.ActualMinutes = &v
	}
	return o
}

// SnapshotItems copies cart lines by value, freezing the effective unit
// price at the given instant.
func SnapshotItems(items []CartItem, at time.Time) []OrderItem {
	out := make([]OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, OrderItem{
			MenuItemID: it.ID,
			Name:       it.Name,
			Category:   it.Category,
			ListPrice:  it.Price,
			UnitPrice:  it.EffectivePrice(at),
			Quantity:   it.Quantity,
		})
	}
	return out
}

// PlaceOrderRequest is the body of POST /orders.
type PlaceOrderRequest struct {
	TableNumber   string `json:"table_number" binding:"required,max=32"`
	CustomerName  string `json:"customer_name" binding:"omitempty,max=100"`
	CustomerPhone string `json:"customer_phone" binding:"omitempty,max=32"`
}

// UpdateOrderStatusRequest is the body of PATCH /orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,order_status"`
}

// KitchenTicket is an active order as the kitchen display renders it.
type KitchenTicket struct {
	Order
	ElapsedMinutes int  `json:"elapsed_minutes"`
	Urgent         bool `json:"urgent"`
}

// TrackedOrder is an order with its progress percentage.
type TrackedOrder struct {
	Order
	Progress int `json:"progress"`
}

// OrderTracking splits orders into active and completed lists.
type OrderTracking struct {
	Active    []TrackedOrder `json:"active"`
	Completed []TrackedOrder `json:"completed"`
}
