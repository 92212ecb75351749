package services

import (
	"context"
	"sort"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const topItemsLimit = 5

// AnalyticsService builds the admin dashboard overview from the stores.
type AnalyticsService interface {
	Summary(ctx context.Context) (*models.AnalyticsSummary, *ServiceError)
}

type analyticsServiceImpl struct {
	orders       OrderLister
	reviews      ReviewService
	inventory    InventoryService
	reservations ReservationService
	logger       *zap.Logger
}

func NewAnalyticsService(orders OrderLister, reviews ReviewService, inventory InventoryService, reservations ReservationService, logger *zap.Logger) AnalyticsService {
	return &analyticsServiceImpl{
		orders:       orders,
		reviews:      reviews,
		inventory:    inventory,
		reservations: reservations,
		logger:       logger,
	}
}

func (s *analyticsServiceImpl) Summary(ctx context.Context) (*models.AnalyticsSummary, *ServiceError) {
	orders, svcErr := s.orders.ListOrders(ctx, "")
	if svcErr != nil {
		return nil, svcErr
	}

	summary := &models.AnalyticsSummary{
		TotalOrders:    len(orders),
		OrdersByStatus: make(map[models.OrderStatus]int, len(models.OrderStatuses)),
	}
	for _, st := range models.OrderStatuses {
		summary.OrdersByStatus[st] = 0
	}

	revenue := decimal.Zero
	byItem := make(map[string]*models.TopItem)
	itemRevenue := make(map[string]decimal.Decimal)
	for _, o := range orders {
		revenue = revenue.Add(decimal.NewFromFloat(o.Total))
		summary.OrdersByStatus[o.Status]++
		for _, it := range o.Items {
			top, ok := byItem[it.MenuItemID]
			if !ok {
				top = &models.TopItem{MenuItemID: it.MenuItemID, Name: it.Name}
				byItem[it.MenuItemID] = top
			}
			top.Quantity += it.Quantity
			itemRevenue[it.MenuItemID] = itemRevenue[it.MenuItemID].Add(
				decimal.NewFromFloat(it.UnitPrice).Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	summary.TotalRevenue = revenue.Round(2).InexactFloat64()
	if len(orders) > 0 {
		summary.AverageOrderValue = revenue.Div(decimal.NewFromInt(int64(len(orders)))).Round(2).InexactFloat64()
	}

	top := make([]models.TopItem, 0, len(byItem))
	for id, it := range byItem {
		it.Revenue = itemRevenue[id].Round(2).InexactFloat64()
		top = append(top, *it)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity != top[j].Quantity {
			return top[i].Quantity > top[j].Quantity
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > topItemsLimit {
		top = top[:topItemsLimit]
	}
	summary.TopItems = top

	summary.AverageRating = s.reviews.Stats(ctx).AverageRating
	summary.LowStockCount = len(s.inventory.LowStock(ctx))
	summary.ReservationsByStatus = s.reservations.Stats(ctx)

	s.logger.Debug("Analytics summary built", zap.Int("orders", summary.TotalOrders))
	return summary, nil
}
