// Package navigation resolves URL fragments to pages and gates staff pages.
package navigation

import (
	"strings"

	"github.com/Soukthavilay/qr-order/models"
)

// Page identifies one screen of the app.
type Page string

const (
	PageMenu         Page = "menu"
	PageCart         Page = "cart"
	PageTracking     Page = "tracking"
	PageReservations Page = "reservations"
	PageReview       Page = "review"
	PageLogin        Page = "login"
	PageDashboard    Page = "dashboard"
	PageKitchen      Page = "kitchen"
	PagePOS          Page = "pos"
	PageInventory    Page = "inventory"
	PageReviews      Page = "reviews"
	PageAnalytics    Page = "analytics"
	PageIntegrations Page = "integrations"
)

// DefaultPage is shown for empty or unknown fragments.
const DefaultPage = PageMenu

// pages maps every page to the roles allowed on it; nil means public.
var pages = map[Page][]models.Role{
	PageMenu:         nil,
	PageCart:         nil,
	PageTracking:     nil,
	PageReservations: nil,
	PageReview:       nil,
	PageLogin:        nil,
	PageDashboard:    {models.RoleAdmin, models.RoleWaiter, models.RoleKitchen},
	PageKitchen:      {models.RoleAdmin, models.RoleWaiter, models.RoleKitchen},
	PagePOS:          {models.RoleAdmin, models.RoleWaiter},
	PageInventory:    {models.RoleAdmin, models.RoleKitchen},
	PageReviews:      {models.RoleAdmin, models.RoleWaiter},
	PageAnalytics:    {models.RoleAdmin},
	PageIntegrations: {models.RoleAdmin},
}

// Parse maps a fragment such as "#kitchen" or "kitchen" to a page.
// Unknown or empty fragments map to DefaultPage.
func Parse(fragment string) Page {
	f := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(fragment), "#")))
	if _, ok := pages[Page(f)]; ok {
		return Page(f)
	}
	return DefaultPage
}

// IsRestricted reports whether p requires a signed-in user.
func (p Page) IsRestricted() bool {
	return pages[p] != nil
}

// RoleAllowed reports whether role may open p.
func (p Page) RoleAllowed(role models.Role) bool {
	roles := pages[p]
	if roles == nil {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// Resolve is the page shown for fragment; user is nil when nobody is signed in.
// Restricted pages resolve to the login page without a user.
func Resolve(fragment string, user *models.User) Page {
	page := Parse(fragment)
	if page.IsRestricted() && user == nil {
		return PageLogin
	}
	return page
}

// Resolution is the outcome of resolving a fragment.
type Resolution struct {
	Page       Page `json:"page"`
	Restricted bool `json:"restricted"`
	Allowed    bool `json:"allowed"`
}

// ResolveFor resolves fragment and also reports whether the user's role
// may use the page.
func ResolveFor(fragment string, user *models.User) Resolution {
	page := Resolve(fragment, user)
	allowed := true
	if page.IsRestricted() {
		allowed = user != nil && page.RoleAllowed(user.Role)
	}
	return Resolution{Page: page, Restricted: page.IsRestricted(), Allowed: allowed}
}
