package models_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		allowed  bool
	}{
		{models.StatusReceived, models.StatusInKitchen, true},
		{models.StatusInKitchen, models.StatusReady, true},
		{models.StatusReady, models.StatusServed, true},
		{models.StatusReceived, models.StatusServed, false},
		{models.StatusReceived, models.StatusReady, false},
		{models.StatusReady, models.StatusInKitchen, false},
		{models.StatusServed, models.StatusReceived, false},
		{models.StatusReceived, models.StatusReceived, false},
		{models.StatusReceived, "cancelled", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
			err := models.ValidateTransition(tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, models.ErrInvalidTransition))
			}
		})
	}
}

func TestOrderStatus_NextAndProgress(t *testing.T) {
	next, ok := models.StatusReceived.Next()
	assert.True(t, ok)
	assert.Equal(t, models.StatusInKitchen, next)

	_, ok = models.StatusServed.Next()
	assert.False(t, ok)

	assert.Equal(t, 0, models.StatusReceived.Progress())
	assert.Equal(t, 33, models.StatusInKitchen.Progress())
	assert.Equal(t, 66, models.StatusReady.Progress())
	assert.Equal(t, 100, models.StatusServed.Progress())
}

func TestOrder_ElapsedAndUrgent(t *testing.T) {
	created := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	order := models.Order{CreatedAt: created, Status: models.StatusReceived}

	assert.Equal(t, 0, order.ElapsedMinutes(created.Add(59*time.Second)))
	assert.Equal(t, 20, order.ElapsedMinutes(created.Add(20*time.Minute+30*time.Second)))
	assert.False(t, order.IsUrgent(created.Add(20*time.Minute+59*time.Second)))
	assert.True(t, order.IsUrgent(created.Add(21*time.Minute)))
	assert.Equal(t, 0, order.ElapsedMinutes(created.Add(-time.Minute)))
}

func TestSnapshotItems_FreezesEffectivePrice(t *testing.T) {
	cart := models.Cart{}.Add(laapItem(2))
	items := models.SnapshotItems(cart.Items, time.Now())

	assert.Len(t, items, 1)
	assert.Equal(t, "1", items[0].MenuItemID)
	assert.InDelta(t, 45000, items[0].ListPrice, 0.001)
	assert.InDelta(t, 40500, items[0].UnitPrice, 0.001)
	assert.InDelta(t, 81000, items[0].LineTotal(), 0.001)

	cart = cart.SetQuantity("1", 9)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestOrder_CloneDoesNotAlias(t *testing.T) {
	est := 15
	order := models.Order{ID: "o1", Items: []models.OrderItem{{Name: "Pho", Quantity: 1}}, EstimatedMinutes: &est}
	clone := order.Clone()

	clone.Items[0].Quantity = 5
	*clone.EstimatedMinutes = 99

	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, 15, *order.EstimatedMinutes)
}

func TestReservationStatus_Transitions(t *testing.T) {
	assert.True(t, models.ReservationPending.CanTransitionTo(models.ReservationConfirmed))
	assert.True(t, models.ReservationPending.CanTransitionTo(models.ReservationCancelled))
	assert.True(t, models.ReservationConfirmed.CanTransitionTo(models.ReservationCompleted))
	assert.False(t, models.ReservationPending.CanTransitionTo(models.ReservationCompleted))
	assert.False(t, models.ReservationCancelled.CanTransitionTo(models.ReservationConfirmed))
	assert.False(t, models.ReservationStatus("archived").IsValid())
}

func TestReservation_IsPastDate(t *testing.T) {
	now := time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)
	assert.True(t, models.Reservation{Date: "2026-06-09"}.IsPastDate(now))
	assert.False(t, models.Reservation{Date: "2026-06-10"}.IsPastDate(now))
	assert.False(t, models.Reservation{Date: "2026-07-01"}.IsPastDate(now))
}

func TestInventoryItem_Levels(t *testing.T) {
	item := models.InventoryItem{CurrentStock: 5, MinStock: 5, MaxStock: 50, CostPerUnit: 2.5}
	assert.True(t, item.IsLowStock())
	assert.Equal(t, models.StockLow, item.Level())
	assert.InDelta(t, 12.5, item.Value(), 0.0001)

	item.CurrentStock = 20
	assert.Equal(t, models.StockNormal, item.Level())

	item.CurrentStock = 40
	assert.Equal(t, models.StockHigh, item.Level())
}

func TestReview_IsPositive(t *testing.T) {
	assert.True(t, models.Review{Rating: 4}.IsPositive())
	assert.True(t, models.Review{Rating: 5}.IsPositive())
	assert.False(t, models.Review{Rating: 3}.IsPositive())
}
