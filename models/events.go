package models

import "time"

// Event types published on the restaurant event bus.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventReservationCreated = "reservation.created"
	EventReviewCreated      = "review.created"
	EventInventoryLowStock  = "inventory.low_stock"
)

// KitchenEvent is a status update for an order coming from the kitchen feed.
type KitchenEvent struct {
	OrderID    string      `json:"order_id"`
	Status     OrderStatus `json:"status"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// OrderEvent is published when an order is created or changes status.
type OrderEvent struct {
	Type        string      `json:"type"`
	OrderID     string      `json:"order_id"`
	TableNumber string      `json:"table_number"`
	Status      OrderStatus `json:"status"`
	Previous    OrderStatus `json:"previous_status,omitempty"`
	Total       float64     `json:"total"`
	Timestamp   time.Time   `json:"timestamp"`
}

// InventoryEvent is published when an item drops to low stock.
type InventoryEvent struct {
	Type         string    `json:"type"`
	ItemID       string    `json:"item_id"`
	Name         string    `json:"name"`
	CurrentStock float64   `json:"current_stock"`
	MinStock     float64   `json:"min_stock"`
	Timestamp    time.Time `json:"timestamp"`
}

// RecordEvent is published when a reservation or review is created.
type RecordEvent struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}
