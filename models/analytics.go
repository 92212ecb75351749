package models

// TopItem is a menu item ranked by quantity sold.
type TopItem struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

// AnalyticsSummary is the admin dashboard overview.
type AnalyticsSummary struct {
	TotalRevenue         float64                   `json:"total_revenue"`
	TotalOrders          int                       `json:"total_orders"`
	AverageOrderValue    float64                   `json:"average_order_value"`
	AverageRating        float64                   `json:"average_rating"`
	TopItems             []TopItem                 `json:"top_items"`
	OrdersByStatus       map[OrderStatus]int       `json:"orders_by_status"`
	LowStockCount        int                       `json:"low_stock_count"`
	ReservationsByStatus map[ReservationStatus]int `json:"reservations_by_status"`
}

// Bill is the POS view of an active order.
type Bill struct {
	OrderID     string      `json:"order_id"`
	TableNumber string      `json:"table_number"`
	Status      OrderStatus `json:"status"`
	Lines       []BillLine  `json:"lines"`
	Subtotal    float64     `json:"subtotal"`
	Discount    float64     `json:"discount"`
	Total       float64     `json:"total"`
}

// BillLine is one priced line of a bill.
type BillLine struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// Integration is an external system and whether it is wired up.
type Integration struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}
