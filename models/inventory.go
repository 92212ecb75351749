package models

import "time"

// StockLevel buckets an inventory item for the dashboard.
type StockLevel string

const (
	StockLow    StockLevel = "low"
	StockNormal StockLevel = "normal"
	StockHigh   StockLevel = "high"
)

// highStockRatio of max stock marks an item as well stocked.
const highStockRatio = 0.8

// InventoryItem is a stocked ingredient or supply.
type InventoryItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	CurrentStock  float64   `json:"current_stock"`
	MinStock      float64   `json:"min_stock"`
	MaxStock      float64   `json:"max_stock"`
	Unit          string    `json:"unit"`
	Supplier      string    `json:"supplier,omitempty"`
	CostPerUnit   float64   `json:"cost_per_unit"`
	LastRestocked time.Time `json:"last_restocked"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsLowStock reports current stock at or below the minimum.
func (i InventoryItem) IsLowStock() bool {
	return i.CurrentStock <= i.MinStock
}

// Level classifies the item as low, normal or high stock.
func (i InventoryItem) Level() StockLevel {
	switch {
	case i.IsLowStock():
		return StockLow
	case i.MaxStock > 0 && i.CurrentStock >= i.MaxStock*highStockRatio:
		return StockHigh
	default:
		return StockNormal
	}
}

// Value is the cost of the stock on hand.
func (i InventoryItem) Value() float64 {
	return i.CurrentStock * i.CostPerUnit
}

// AdjustmentReason says why stock changed.
type AdjustmentReason string

const (
	ReasonRestock AdjustmentReason = "restock"
	ReasonAdjust  AdjustmentReason = "adjust"
)

// StockAdjustment is one entry of the inventory audit trail.
type StockAdjustment struct {
	ID            string           `json:"id"`
	ItemID        string           `json:"item_id"`
	PreviousStock float64          `json:"previous_stock"`
	NewStock      float64          `json:"new_stock"`
	Delta         float64          `json:"delta"`
	Reason        AdjustmentReason `json:"reason"`
	Actor         string           `json:"actor,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// InventoryFilter narrows an inventory listing.
type InventoryFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
}

// CreateInventoryItemRequest is the body of POST /inventory.
type CreateInventoryItemRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Category     string  `json:"category" binding:"required,max=50"`
	CurrentStock float64 `json:"current_stock" binding:"gte=0"`
	MinStock     float64 `json:"min_stock" binding:"gte=0"`
	MaxStock     float64 `json:"max_stock" binding:"gtefield=MinStock"`
	Unit         string  `json:"unit" binding:"required,max=20"`
	Supplier     string  `json:"supplier" binding:"omitempty,max=100"`
	CostPerUnit  float64 `json:"cost_per_unit" binding:"gte=0"`
}

// UpdateInventoryItemRequest is a partial update; nil fields are left alone.
// Stock levels change only through restock and adjust.
type UpdateInventoryItemRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Category    *string  `json:"category" binding:"omitempty,max=50"`
	MinStock    *float64 `json:"min_stock" binding:"omitempty,gte=0"`
	MaxStock    *float64 `json:"max_stock" binding:"omitempty,gte=0"`
	Unit        *string  `json:"unit" binding:"omitempty,max=20"`
	Supplier    *string  `json:"supplier" binding:"omitempty,max=100"`
	CostPerUnit *float64 `json:"cost_per_unit" binding:"omitempty,gte=0"`
}

// RestockRequest adds Quantity to the current stock.
type RestockRequest struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

// AdjustStockRequest sets the current stock to Stock.
type AdjustStockRequest struct {
	Stock float64 `json:"stock" binding:"gte=0"`
}

// InventoryValue is the total cost of stock on hand.
type InventoryValue struct {
	TotalValue    float64 `json:"total_value"`
	ItemCount     int     `json:"item_count"`
	LowStockCount int     `json:"low_stock_count"`
}
