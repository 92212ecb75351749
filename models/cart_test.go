package models_test

import (
	"testing"
	"time"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/stretchr/testify/assert"
)

func laapItem(qty int) models.CartItem {
	return models.CartItem{
		MenuItem: models.MenuItem{
			ID:        "1",
			Name:      "Larb Gai",
			Price:     45000,
			Category:  "Mains",
			Available: true,
			Promotions: []models.Promotion{
				{ID: "p1", Title: "Mains week", Discount: 10, Category: "Mains"},
			},
		},
		Quantity: qty,
	}
}

func TestCart_AddMergesByID(t *testing.T) {
	cart := models.Cart{}
	cart = cart.Add(laapItem(1))
	cart = cart.Add(laapItem(2))
	cart = cart.Add(laapItem(3))

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 6, cart.Items[0].Quantity)
	assert.Equal(t, 6, cart.TotalItems())
}

func TestCart_AddDefaultsQuantityToOne(t *testing.T) {
	cart := models.Cart{}.Add(laapItem(0))
	assert.Equal(t, 1, cart.TotalItems())
}

func TestCart_ActionsDoNotMutateReceiver(t *testing.T) {
	original := models.Cart{}.Add(laapItem(1))
	updated := original.Add(laapItem(4))

	assert.Equal(t, 1, original.Items[0].Quantity)
	assert.Equal(t, 5, updated.Items[0].Quantity)

	removed := updated.SetQuantity("1", 0)
	assert.Len(t, updated.Items, 1)
	assert.Empty(t, removed.Items)
}

func TestCart_SetQuantity(t *testing.T) {
	cart := models.Cart{}.Add(laapItem(2))

	cart = cart.SetQuantity("1", 7)
	assert.Equal(t, 7, cart.TotalItems())

	cart = cart.SetQuantity("missing", 3)
	assert.Equal(t, 7, cart.TotalItems())

	cart = cart.SetQuantity("1", -1)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0, cart.TotalItems())
}

func TestCart_RemoveAndClear(t *testing.T) {
	other := laapItem(1)
	other.ID = "2"
	other.Price = 20000
	cart := models.Cart{}.Add(laapItem(1)).Add(other)

	cart = cart.Remove("nope")
	assert.Len(t, cart.Items, 2)

	cart = cart.Remove("1")
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "2", cart.Items[0].ID)

	assert.True(t, cart.Clear().IsEmpty())
}

func TestCart_TotalPriceAppliesCategoryPromotion(t *testing.T) {
	cart := models.Cart{}.Add(laapItem(2))
	assert.InDelta(t, 81000, cart.TotalPrice(), 0.001)
}

func TestCart_TotalPriceIgnoresOtherCategoryAndExpiredPromotions(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	item := laapItem(1)
	item.Promotions = []models.Promotion{
		{ID: "drinks", Discount: 50, Category: "Drinks"},
		{ID: "old", Discount: 30, Category: "Mains", ValidUntil: now.Add(-time.Hour)},
	}
	cart := models.Cart{}.Add(item)
	assert.InDelta(t, 45000, cart.TotalPriceAt(now), 0.001)

	item.Promotions = append(item.Promotions, models.Promotion{ID: "all", Discount: 20})
	cart = models.Cart{}.Add(item)
	assert.InDelta(t, 36000, cart.TotalPriceAt(now), 0.001)
}

func TestMenuItem_ActivePromotionPicksLargestDiscount(t *testing.T) {
	item := laapItem(1).MenuItem
	item.Promotions = append(item.Promotions, models.Promotion{ID: "p2", Discount: 25, Category: "Mains"})

	promo := item.ActivePromotion(time.Now())
	if assert.NotNil(t, promo) {
		assert.Equal(t, "p2", promo.ID)
	}
	assert.InDelta(t, 33750, item.EffectivePrice(time.Now()), 0.001)
}

func TestMenuItem_HasAllTagsAndLocalized(t *testing.T) {
	item := models.MenuItem{
		ID:          "9",
		Name:        "Green papaya salad",
		DietaryTags: []models.DietaryTag{models.DietaryVegan, models.DietarySpicy},
		Translations: map[string]models.LocalizedText{
			"lo": {Name: "ຕຳໝາກຫຸ່ງ"},
		},
	}

	assert.True(t, item.HasAllTags([]models.DietaryTag{models.DietarySpicy}))
	assert.True(t, item.HasAllTags(nil))
	assert.False(t, item.HasAllTags([]models.DietaryTag{models.DietaryVegan, models.DietaryHalal}))

	assert.Equal(t, "ຕຳໝາກຫຸ່ງ", item.Localized("lo").Name)
	assert.Equal(t, "Green papaya salad", item.Localized("th").Name)
	assert.Equal(t, "Green papaya salad", item.Name)
}
