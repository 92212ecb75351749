package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Soukthavilay/qr-order/controllers"
	"github.com/Soukthavilay/qr-order/middleware"
	"github.com/Soukthavilay/qr-order/repository"
	"github.com/Soukthavilay/qr-order/routes"
	"github.com/Soukthavilay/qr-order/seed"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/Soukthavilay/qr-order/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := controllers.RegisterValidators(); err != nil {
		panic(err)
	}
}

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	logger := zap.NewNop()
	store := storage.NewMemoryStore()
	menuRepo := repository.NewMemoryMenuRepository(seed.MenuItems())

	auth, err := services.NewAuthService(store, "test-secret", time.Hour, bcrypt.MinCost, logger)
	require.NoError(t, err)
	prefs := services.NewPreferenceService(store, logger)
	carts := services.NewCartService(store, menuRepo, logger)
	orders := services.NewOrderService(nil, carts, services.EventOptions{}, logger)
	reservations := services.NewReservationService(nil, services.EventOptions{}, logger)
	reviews := services.NewReviewService(nil, orders, services.EventOptions{}, logger)
	inventory := services.NewInventoryService(nil, seed.InventoryItems(), services.EventOptions{}, logger)
	analytics := services.NewAnalyticsService(orders, reviews, inventory, reservations, logger)

	r := gin.New()
	r.Use(middleware.Session(), middleware.Authenticate(auth))
	routes.RegisterAllRoutes(r, routes.Controllers{
		App:         controllers.NewAppController(prefs),
		Auth:        controllers.NewAuthController(auth),
		Preferences: controllers.NewPreferenceController(prefs),
		Menu:        controllers.NewMenuController(services.NewMenuService(menuRepo, nil, nil, logger), prefs),
		Cart:        controllers.NewCartController(carts),
		Orders:      controllers.NewOrderController(orders),
		Billing:     controllers.NewBillingController(services.NewBillingService(orders, logger)),
		Reservation: controllers.NewReservationController(reservations),
		Review:      controllers.NewReviewController(reviews),
		Inventory:   controllers.NewInventoryController(inventory),
		Admin:       controllers.NewAdminController(analytics, services.NewIntegrationService(nil)),
	}, middleware.NewRateLimiter(rate.Limit(100), 100, time.Minute))
	return r
}

func call(r *gin.Engine, method, path, session, body string) (int, map[string]interface{}) {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w.Code, resp
}

func login(t *testing.T, r *gin.Engine, session, username string) string {
	t.Helper()
	code, resp := call(r, http.MethodPost, "/auth/login", session, `{"username":"`+username+`","password":"password"}`)
	require.Equal(t, http.StatusOK, code)
	return resp["token"].(string)
}

func TestGuestCheckoutAndKitchenFlow(t *testing.T) {
	r := setupServer(t)

	code, _ := call(r, http.MethodPost, "/cart/items", "guest-1", `{"menu_item_id":"tom-yum","quantity":2}`)
	require.Equal(t, http.StatusOK, code)
	code, resp := call(r, http.MethodPost, "/orders", "guest-1", `{"table_number":"4"}`)
	require.Equal(t, http.StatusCreated, code)
	orderID := resp["order"].(map[string]interface{})["id"].(string)

	_, resp = call(r, http.MethodGet, "/cart", "guest-1", "")
	assert.Equal(t, float64(0), resp["cart"].(map[string]interface{})["total_items"])

	code, _ = call(r, http.MethodGet, "/orders/"+orderID, "", "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = call(r, http.MethodGet, "/kitchen/orders", "guest-1", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	login(t, r, "chef", "chef1")
	_, resp = call(r, http.MethodGet, "/kitchen/orders", "chef", "")
	assert.Equal(t, float64(1), resp["count"])

	code, _ = call(r, http.MethodPost, "/kitchen/orders/"+orderID+"/start", "chef", "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(r, http.MethodPost, "/orders/"+orderID+"/serve", "chef", "")
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = call(r, http.MethodPost, "/kitchen/orders/"+orderID+"/ready", "chef", "")
	assert.Equal(t, http.StatusOK, code)

	login(t, r, "waiter", "waiter1")
	code, resp = call(r, http.MethodGet, "/pos/bills/4", "waiter", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(70000), resp["bill"].(map[string]interface{})["total"])

	code, _ = call(r, http.MethodPost, "/orders/"+orderID+"/serve", "waiter", "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(r, http.MethodGet, "/pos/bills/4", "waiter", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = call(r, http.MethodPost, "/reviews", "guest-1", `{"order_id":"`+orderID+`","customer_name":"Dao","rating":5}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, true, resp["review"].(map[string]interface{})["verified"])
}

func TestCannotSkipKitchen(t *testing.T) {
	r := setupServer(t)
	call(r, http.MethodPost, "/cart/items", "guest", `{"menu_item_id":"spring-rolls"}`)
	_, resp := call(r, http.MethodPost, "/orders", "guest", `{"table_number":"2"}`)
	orderID := resp["order"].(map[string]interface{})["id"].(string)

	login(t, r, "waiter", "waiter1")
	code, _ := call(r, http.MethodPatch, "/orders/"+orderID+"/status", "waiter", `{"status":"served"}`)
	assert.Equal(t, http.StatusConflict, code)

	_, resp = call(r, http.MethodGet, "/orders/"+orderID, "", "")
	assert.Equal(t, "received", resp["order"].(map[string]interface{})["status"])
}

func TestBearerTokenAndAdminRoutes(t *testing.T) {
	r := setupServer(t)
	token := login(t, r, "admin-session", "admin")

	req, _ := http.NewRequest(http.MethodGet, "/analytics/summary", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	login(t, r, "chef", "chef1")
	code, _ := call(r, http.MethodGet, "/analytics/summary", "chef", "")
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = call(r, http.MethodGet, "/inventory/low-stock", "chef", "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = call(r, http.MethodPost, "/auth/logout", "chef", "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(r, http.MethodGet, "/inventory/low-stock", "chef", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestLoginFailure(t *testing.T) {
	r := setupServer(t)
	code, resp := call(r, http.MethodPost, "/auth/login", "s", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid username or password", resp["error"])
}

func TestPublicPagesAndPreferences(t *testing.T) {
	r := setupServer(t)

	code, _ := call(r, http.MethodPut, "/preferences", "s", `{"language":"th"}`)
	require.Equal(t, http.StatusOK, code)
	_, resp := call(r, http.MethodGet, "/menu/pad-thai", "s", "")
	assert.Equal(t, "ผัดไทย", resp["item"].(map[string]interface{})["name"])

	_, resp = call(r, http.MethodGet, "/navigate?fragment=dashboard", "s", "")
	assert.Equal(t, "login", resp["page"])

	code, _ = call(r, http.MethodGet, "/menu/pad-thai/image-url", "s", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestMenuImageUploadIsAdminOnly(t *testing.T) {
	r := setupServer(t)

	code, _ := call(r, http.MethodPost, "/menu/pad-thai/image", "guest", `{}`)
	assert.Equal(t, http.StatusUnauthorized, code)

	login(t, r, "chef", "chef1")
	code, _ = call(r, http.MethodPost, "/menu/pad-thai/image", "chef", `{}`)
	assert.Equal(t, http.StatusForbidden, code)

	login(t, r, "admin-session", "admin")
	code, resp := call(r, http.MethodPost, "/menu/pad-thai/image", "admin-session", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Image file is required", resp["error"])
}
