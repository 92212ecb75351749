package seed_test

import (
	"testing"

	"github.com/Soukthavilay/qr-order/i18n"
	"github.com/Soukthavilay/qr-order/seed"
	"github.com/stretchr/testify/assert"
)

func TestMenuItems(t *testing.T) {
	items := seed.MenuItems()
	assert.NotEmpty(t, items)

	seen := make(map[string]bool)
	for _, it := range items {
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
		assert.Positive(t, it.Price, it.ID)
		assert.NotEmpty(t, it.Category, it.ID)
		for _, tag := range it.DietaryTags {
			assert.True(t, tag.IsValid(), "%s has unknown tag %s", it.ID, tag)
		}
		for lang := range it.Translations {
			_, ok := i18n.ParseLanguage(lang)
			assert.True(t, ok, "%s has translation for unknown language %s", it.ID, lang)
		}
	}
}

func TestMenuItemsReturnsFreshCopies(t *testing.T) {
	first := seed.MenuItems()
	first[0].Name = "changed"
	assert.NotEqual(t, "changed", seed.MenuItems()[0].Name)
}

func TestInventoryItems(t *testing.T) {
	items := seed.InventoryItems()
	assert.Len(t, items, 4)

	low := 0
	for _, it := range items {
		assert.GreaterOrEqual(t, it.MaxStock, it.MinStock, it.ID)
		if it.IsLowStock() {
			low++
		}
	}
	assert.Equal(t, 2, low)
}
