// Package seed holds the demo catalog and stock used when no database is
// configured.
package seed

import (
	"time"

	"github.com/Soukthavilay/qr-order/models"
)

var mainsPromotion = models.Promotion{
	ID:          "promo-mains",
	Title:       "Curry Week",
	Description: "10% off all main dishes",
	Discount:    10,
	Category:    "Mains",
}

// MenuItems returns a fresh copy of the demo menu.
func MenuItems() []models.MenuItem {
	return []models.MenuItem{
		{
			ID: "pad-thai", Name: "Pad Thai", Price: 45000, Category: "Mains",
			Description: "Stir-fried rice noodles with egg, tofu, peanuts and tamarind",
			Image:       "menu/pad-thai.jpg",
			Available:   true, Availability: models.AvailabilityAvailable, Popular: true, Stock: 30,
			DietaryTags: []models.DietaryTag{models.DietaryDairyFree},
			Promotions:  []models.Promotion{mainsPromotion},
			Translations: map[string]models.LocalizedText{
				"lo": {Name: "ຜັດໄທ"},
				"th": {Name: "ผัดไทย"},
				"vi": {Name: "Pad Thái"},
			},
		},
		{
			ID: "green-curry", Name: "Green Curry", Price: 50000, Category: "Mains",
			Description: "Chicken in green curry with Thai basil and coconut milk",
			Image:       "menu/green-curry.jpg",
			Available:   true, Availability: models.AvailabilityLimited, Popular: true, Stock: 5,
			DietaryTags: []models.DietaryTag{models.DietarySpicy, models.DietaryGlutenFree},
			Promotions:  []models.Promotion{mainsPromotion},
			Translations: map[string]models.LocalizedText{
				"th": {Name: "แกงเขียวหวาน"},
			},
		},
		{
			ID: "massaman-curry", Name: "Massaman Curry", Price: 48000, Category: "Mains",
			Description: "Slow-cooked beef with potatoes and roasted peanuts",
			Image:       "menu/massaman-curry.jpg",
			Available:   true, Availability: models.AvailabilityAvailable, Stock: 12,
			DietaryTags: []models.DietaryTag{models.DietaryGlutenFree, models.DietaryHalal},
			Promotions:  []models.Promotion{mainsPromotion},
		},
		{
			ID: "larb-gai", Name: "Larb Gai", Price: 40000, Category: "Mains",
			Description: "Minced chicken salad with lime, chili and toasted rice",
			Image:       "menu/larb-gai.jpg",
			Available:   true, Availability: models.AvailabilityAvailable, Popular: true, Stock: 20,
			DietaryTags: []models.DietaryTag{models.DietarySpicy, models.DietaryDairyFree, models.DietaryNutFree},
			Promotions:  []models.Promotion{mainsPromotion},
			Translations: map[string]models.LocalizedText{
				"lo": {Name: "ລາບໄກ່"},
			},
		},
		{
			ID: "tom-yum", Name: "Tom Yum Soup", Price: 35000, Category: "Soups",
			Description: "Hot and sour shrimp soup with lemongrass and galangal",
			Image:       "menu/tom-yum.jpg",
			Available:   true, Availability: models.AvailabilityAvailable, Popular: true, Stock: 25,
			DietaryTags: []models.DietaryTag{models.DietarySpicy, models.DietaryDairyFree},
		},
		{
			ID: "beef-pho", Name: "Beef Pho", Price: 55000, Category: "Soups",
			Description: "Rice noodle soup with sliced beef and fresh herbs",
			Image:       "menu/beef-pho.jpg",
			Available:   false, Availability: models.AvailabilityOutOfStock, Stock: 0,
			DietaryTags: []models.DietaryTag{models.DietaryDairyFree, models.DietaryNutFree},
			Translations: map[string]models.LocalizedText{
				"vi": {Name: "Phở Bò"},
			},
		},
		{
			ID: "spring-rolls", Name: "Spring Rolls", Price: 20000, Category: "Appetizers",
			Description: "Crispy vegetable rolls with sweet chili sauce",
			Image:       "menu/spring-rolls.jpg",
			Available:   true, Availability: models.AvailabilityAvailable, Stock: 40,
			DietaryTags: []models.DietaryTag{models.DietaryVegan, models.DietaryVegetarian},
		},
		{
			ID: "mango-sticky-rice", Name: "Mango Sticky Rice", Price: 25000, Category: "Desserts",
			Description: "Sweet sticky rice with fresh mango and coconut cream",
			Image:       "menu/mango-sticky-rice.jpg",
			Available:   true, Availability: models.AvailabilityAvailable, Popular: true, Stock: 15,
			DietaryTags: []models.DietaryTag{models.DietaryVegan, models.DietaryVegetarian, models.DietaryGlutenFree},
		},
	}
}

// InventoryItems returns a fresh copy of the demo stock list.
func InventoryItems() []models.InventoryItem {
	day := func(s string) time.Time {
		t, _ := time.Parse(models.DateLayout, s)
		return t
	}
	return []models.InventoryItem{
		{
			ID: "inv-1", Name: "Rice Noodles", Category: "Ingredients",
			CurrentStock: 25, MinStock: 10, MaxStock: 100, Unit: "kg",
			Supplier: "Local Farm Co.", CostPerUnit: 15000, LastRestocked: day("2024-01-15"),
		},
		{
			ID: "inv-2", Name: "Coconut Milk", Category: "Ingredients",
			CurrentStock: 5, MinStock: 15, MaxStock: 50, Unit: "cans",
			Supplier: "Thai Imports Ltd.", CostPerUnit: 8000, LastRestocked: day("2024-01-10"),
		},
		{
			ID: "inv-3", Name: "Fresh Shrimp", Category: "Seafood",
			CurrentStock: 8, MinStock: 5, MaxStock: 20, Unit: "kg",
			Supplier: "Ocean Fresh", CostPerUnit: 120000, LastRestocked: day("2024-01-16"),
		},
		{
			ID: "inv-4", Name: "Thai Basil", Category: "Herbs",
			CurrentStock: 2, MinStock: 3, MaxStock: 10, Unit: "bunches",
			Supplier: "Herb Garden", CostPerUnit: 5000, LastRestocked: day("2024-01-14"),
		},
	}
}
