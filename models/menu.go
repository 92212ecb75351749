package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Availability describes how much of a dish the kitchen can still serve.
type Availability string

const (
	AvailabilityAvailable  Availability = "available"
	AvailabilityLimited    Availability = "limited"
	AvailabilityOutOfStock Availability = "out_of_stock"
)

// DietaryTag is one of the closed set of dietary labels a dish can carry.
type DietaryTag string

const (
	DietaryVegan      DietaryTag = "vegan"
	DietaryVegetarian DietaryTag = "vegetarian"
	DietaryGlutenFree DietaryTag = "gluten_free"
	DietaryDairyFree  DietaryTag = "dairy_free"
	DietaryNutFree    DietaryTag = "nut_free"
	DietaryHalal      DietaryTag = "halal"
	DietarySpicy      DietaryTag = "spicy"
)

// DietaryTags lists every known tag in display order.
var DietaryTags = []DietaryTag{
	DietaryVegan, DietaryVegetarian, DietaryGlutenFree, DietaryDairyFree,
	DietaryNutFree, DietaryHalal, DietarySpicy,
}

// IsValid reports whether t belongs to the known tag set.
func (t DietaryTag) IsValid() bool {
	for _, known := range DietaryTags {
		if t == known {
			return true
		}
	}
	return false
}

// Promotion is a percentage discount attached to a category.
// An empty Category applies to every category; a zero ValidUntil never expires.
type Promotion struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Discount    int       `json:"discount" bson:"discount"`
	Category    string    `json:"category,omitempty" bson:"category,omitempty"`
	ValidUntil  time.Time `json:"valid_until,omitempty" bson:"valid_until,omitempty"`
}

// ActiveAt reports whether the promotion is usable at the given instant.
func (p Promotion) ActiveAt(at time.Time) bool {
	if p.Discount <= 0 {
		return false
	}
	return p.ValidUntil.IsZero() || at.Before(p.ValidUntil)
}

// LocalizedText overrides a dish's name and description for one language.
type LocalizedText struct {
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// MenuItem is a catalog entry. Stores never mutate it.
type MenuItem struct {
	ID           string                   `json:"id" bson:"_id"`
	Name         string                   `json:"name" bson:"name"`
	Description  string                   `json:"description,omitempty" bson:"description,omitempty"`
	Price        float64                  `json:"price" bson:"price"`
	Image        string                   `json:"image,omitempty" bson:"image,omitempty"`
	Category     string                   `json:"category" bson:"category"`
	Available    bool                     `json:"available" bson:"available"`
	Availability Availability             `json:"availability,omitempty" bson:"availability,omitempty"`
	Popular      bool                     `json:"popular,omitempty" bson:"popular,omitempty"`
	Stock        int                      `json:"stock,omitempty" bson:"stock,omitempty"`
	DietaryTags  []DietaryTag             `json:"dietary_tags,omitempty" bson:"dietary_tags,omitempty"`
	Promotions   []Promotion              `json:"promotions,omitempty" bson:"promotions,omitempty"`
	Translations map[string]LocalizedText `json:"translations,omitempty" bson:"translations,omitempty"`
}

// ActivePromotion returns the largest discount applicable to the item's
// category at the given instant, or nil.
func (m MenuItem) ActivePromotion(at time.Time) *Promotion {
	var best *Promotion
	for i := range m.Promotions {
		p := m.Promotions[i]
		if !p.ActiveAt(at) {
			continue
		}
		if p.Category != "" && p.Category != m.Category {
			continue
		}
		if best == nil || p.Discount > best.Discount {
			best = &p
		}
	}
	return best
}

// EffectivePrice is price × (1 − discount/100) under the active promotion,
// rounded to two places. Without a promotion it is the list price.
func (m MenuItem) EffectivePrice(at time.Time) float64 {
	return m.effectivePrice(at).InexactFloat64()
}

func (m MenuItem) effectivePrice(at time.Time) decimal.Decimal {
	price := decimal.NewFromFloat(m.Price)
	p := m.ActivePromotion(at)
	if p == nil {
		return price
	}
	discount := min(p.Discount, 100)
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(discount)).Div(decimal.NewFromInt(100)))
	return price.Mul(factor).Round(2)
}

// CurrentAvailability resolves the three-state availability, deriving it
// from the boolean flag when the catalog did not set one.
func (m MenuItem) CurrentAvailability() Availability {
	if m.Availability != "" {
		return m.Availability
	}
	if m.Available {
		return AvailabilityAvailable
	}
	return AvailabilityOutOfStock
}

// HasAllTags reports whether the item carries every tag in tags.
func (m MenuItem) HasAllTags(tags []DietaryTag) bool {
	for _, want := range tags {
		found := false
		for _, have := range m.DietaryTags {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Localized returns a copy with name and description replaced by the
// override for lang, when one exists.
func (m MenuItem) Localized(lang string) MenuItem {
	text, ok := m.Translations[lang]
	if !ok {
		return m
	}
	if text.Name != "" {
		m.Name = text.Name
	}
	if text.Description != "" {
		m.Description = text.Description
	}
	return m
}

// MenuFilter narrows a catalog listing. Zero values disable each criterion.
type MenuFilter struct {
	Search       string       `form:"search"`
	Category     string       `form:"category"`
	Availability Availability `form:"availability"`
	PopularOnly  bool         `form:"popular"`
	DietaryTags  []DietaryTag `form:"tag"`
	Language     string       `form:"lang"`
}

// MenuCategory is one group of a categorized menu listing.
type MenuCategory struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}
