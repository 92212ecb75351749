package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrEmptyCart is returned when an order is requested for a cart without items.
var ErrEmptyCart = errors.New("cart is empty")

// CartItem is a menu item plus how many of it the guest wants.
type CartItem struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// Cart is an immutable value: every action returns a new Cart and leaves
// the receiver untouched. No two items share an ID.
type Cart struct {
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at,omitempty"`
}

// Add merges item into the cart by ID, adding its quantity (default 1).
func (c Cart) Add(item CartItem) Cart {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	items := c.copyItems()
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += item.Quantity
			return Cart{Items: items}
		}
	}
	return Cart{Items: append(items, item)}
}

// SetQuantity updates the quantity of id, removing the entry when quantity
// drops to zero or below. Unknown ids leave the cart as is.
func (c Cart) SetQuantity(id string, quantity int) Cart {
	if quantity <= 0 {
		return c.Remove(id)
	}
	items := c.copyItems()
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = quantity
			return Cart{Items: items}
		}
	}
	return c
}

// Remove drops the entry for id if present.
func (c Cart) Remove(id string) Cart {
	items := make([]CartItem, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	if len(items) == len(c.Items) {
		return c
	}
	return Cart{Items: items}
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart {
	return Cart{Items: []CartItem{}}
}

// IsEmpty reports whether the cart holds no items.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems is the sum of quantities.
func (c Cart) TotalItems() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

// TotalPrice sums effective unit price × quantity at the current time.
func (c Cart) TotalPrice() float64 {
	return c.TotalPriceAt(time.Now())
}

// TotalPriceAt sums effective unit price × quantity with promotions
// evaluated at the given instant.
func (c Cart) TotalPriceAt(at time.Time) float64 {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.effectivePrice(at).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total.Round(2).InexactFloat64()
}

func (c Cart) copyItems() []CartItem {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return items
}

// AddToCartRequest is the body of POST /cart/items.
type AddToCartRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"omitempty,min=1,max=99"`
}

// UpdateCartItemRequest is the body of PUT /cart/items/:id.
// Zero or negative quantities remove the item.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is a cart together with its derived totals.
type CartResponse struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}

// NewCartResponse computes the derived totals for c.
func NewCartResponse(c Cart) CartResponse {
	items := c.Items
	if items == nil {
		items = []CartItem{}
	}
	return CartResponse{Items: items, TotalItems: c.TotalItems(), TotalPrice: c.TotalPrice()}
}
