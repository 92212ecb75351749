package services_test

import (
	"context"
	"testing"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/Soukthavilay/qr-order/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsService_Summary(t *testing.T) {
	ctx := context.Background()
	orders, carts := newTestOrderService(nil, nil)
	addToCart(ctx, carts, "s1", "spring-rolls", 3)
	_, _ = orders.PlaceOrder(ctx, "s1", &models.PlaceOrderRequest{TableNumber: "1"})
	addToCart(ctx, carts, "s1", "tom-yum", 1)
	addToCart(ctx, carts, "s1", "spring-rolls", 1)
	second, _ := orders.PlaceOrder(ctx, "s1", &models.PlaceOrderRequest{TableNumber: "2"})
	_, _ = orders.StartCooking(ctx, second.ID)

	reviews := services.NewReviewService(nil, nil, services.EventOptions{}, testLogger())
	_, _ = reviews.CreateReview(ctx, &models.CreateReviewRequest{CustomerName: "A", Rating: 5})
	_, _ = reviews.CreateReview(ctx, &models.CreateReviewRequest{CustomerName: "B", Rating: 4})
	reservations := services.NewReservationService(nil, services.EventOptions{}, testLogger())
	_, _ = reservations.CreateReservation(ctx, newReservationRequest(dayOffset(1), "19:00"))
	inventory := newTestInventoryService(nil, nil)

	svc := services.NewAnalyticsService(orders, reviews, inventory, reservations, testLogger())
	summary, svcErr := svc.Summary(ctx)
	require.Nil(t, svcErr)

	assert.Equal(t, 2, summary.TotalOrders)
	assert.InDelta(t, 115000, summary.TotalRevenue, 0.001)
	assert.InDelta(t, 57500, summary.AverageOrderValue, 0.001)
	assert.InDelta(t, 4.5, summary.AverageRating, 0.001)
	assert.Equal(t, 1, summary.OrdersByStatus[models.StatusReceived])
	assert.Equal(t, 1, summary.OrdersByStatus[models.StatusInKitchen])
	assert.Equal(t, 0, summary.OrdersByStatus[models.StatusServed])
	require.Len(t, summary.TopItems, 2)
	assert.Equal(t, "spring-rolls", summary.TopItems[0].MenuItemID)
	assert.Equal(t, 4, summary.TopItems[0].Quantity)
	assert.InDelta(t, 80000, summary.TopItems[0].Revenue, 0.001)
	assert.Equal(t, 2, summary.LowStockCount)
	assert.Equal(t, 1, summary.ReservationsByStatus[models.ReservationPending])
}

func TestAnalyticsService_SummaryEmpty(t *testing.T) {
	ctx := context.Background()
	carts := newTestCartService(storage.NewMemoryStore())
	orders := services.NewOrderService(nil, carts, services.EventOptions{}, testLogger())
	svc := services.NewAnalyticsService(
		orders,
		services.NewReviewService(nil, nil, services.EventOptions{}, testLogger()),
		services.NewInventoryService(nil, nil, services.EventOptions{}, testLogger()),
		services.NewReservationService(nil, services.EventOptions{}, testLogger()),
		testLogger(),
	)

	summary, svcErr := svc.Summary(ctx)
	require.Nil(t, svcErr)
	assert.Zero(t, summary.TotalOrders)
	assert.Zero(t, summary.AverageOrderValue)
	assert.Empty(t, summary.TopItems)
}
