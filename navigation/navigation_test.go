package navigation_test

import (
	"testing"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/navigation"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := map[string]navigation.Page{
		"":           navigation.PageMenu,
		"#":          navigation.PageMenu,
		"#kitchen":   navigation.PageKitchen,
		"kitchen":    navigation.PageKitchen,
		" #POS ":     navigation.PagePOS,
		"#nowhere":   navigation.PageMenu,
		"#tracking":  navigation.PageTracking,
		"#analytics": navigation.PageAnalytics,
	}
	for fragment, want := range tests {
		assert.Equal(t, want, navigation.Parse(fragment), "fragment %q", fragment)
	}
}

func TestResolve_KitchenRequiresUser(t *testing.T) {
	assert.Equal(t, navigation.PageLogin, navigation.Resolve("kitchen", nil))

	admin := &models.User{ID: "1", Username: "admin", Role: models.RoleAdmin}
	assert.Equal(t, navigation.PageKitchen, navigation.Resolve("kitchen", admin))
}

func TestResolve_PublicPagesNeedNoUser(t *testing.T) {
	for _, f := range []string{"menu", "cart", "tracking", "reservations", "review", "login"} {
		assert.Equal(t, navigation.Parse(f), navigation.Resolve(f, nil), f)
		assert.False(t, navigation.Parse(f).IsRestricted(), f)
	}
}

func TestResolve_IsDeterministic(t *testing.T) {
	user := &models.User{Role: models.RoleWaiter}
	first := navigation.Resolve("#pos", user)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, navigation.Resolve("#pos", user))
	}
}

func TestResolveFor_RoleGate(t *testing.T) {
	chef := &models.User{Username: "chef1", Role: models.RoleKitchen}

	res := navigation.ResolveFor("kitchen", chef)
	assert.Equal(t, navigation.PageKitchen, res.Page)
	assert.True(t, res.Allowed)

	res = navigation.ResolveFor("analytics", chef)
	assert.Equal(t, navigation.PageAnalytics, res.Page)
	assert.True(t, res.Restricted)
	assert.False(t, res.Allowed)

	res = navigation.ResolveFor("analytics", nil)
	assert.Equal(t, navigation.PageLogin, res.Page)
	assert.True(t, res.Allowed)
}
