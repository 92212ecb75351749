package controllers_test

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/Soukthavilay/qr-order/controllers"
	"github.com/Soukthavilay/qr-order/middleware"
	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := controllers.RegisterValidators(); err != nil {
		panic(err)
	}
}

// --- Mock CartService ---

type mockCartService struct {
	getFn    func(ctx context.Context, sessionID string) (models.Cart, *services.ServiceError)
	addFn    func(ctx context.Context, sessionID string, req *models.AddToCartRequest) (models.Cart, *services.ServiceError)
	updateFn func(ctx context.Context, sessionID, itemID string, quantity int) (models.Cart, *services.ServiceError)
}

func (m *mockCartService) GetCart(ctx context.Context, sessionID string) (models.Cart, *services.ServiceError) {
	return m.getFn(ctx, sessionID)
}
func (m *mockCartService) AddItem(ctx context.Context, sessionID string, req *models.AddToCartRequest) (models.Cart, *services.ServiceError) {
	return m.addFn(ctx, sessionID, req)
}
func (m *mockCartService) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (models.Cart, *services.ServiceError) {
	return m.updateFn(ctx, sessionID, itemID, quantity)
}
func (m *mockCartService) RemoveItem(_ context.Context, _, _ string) (models.Cart, *services.ServiceError) {
	return models.Cart{}, nil
}
func (m *mockCartService) ClearCart(_ context.Context, _ string) *services.ServiceError {
	return nil
}
func (m *mockCartService) Take(_ context.Context, _ string) (models.Cart, *services.ServiceError) {
	return models.Cart{}, nil
}
func (m *mockCartService) Restore(_ context.Context, _ string, _ models.Cart) *services.ServiceError {
	return nil
}

// --- Mock OrderService ---

type mockOrderService struct {
	placeFn   func(ctx context.Context, sessionID string, req *models.PlaceOrderRequest) (*models.Order, *services.ServiceError)
	listFn    func(ctx context.Context, status models.OrderStatus) ([]models.Order, *services.ServiceError)
	advanceFn func(ctx context.Context, id string, next models.OrderStatus) (*models.Order, *services.ServiceError)
	queue     []models.KitchenTicket
}

func (m *mockOrderService) Load(_ context.Context) error { return nil }
func (m *mockOrderService) PlaceOrder(ctx context.Context, sessionID string, req *models.PlaceOrderRequest) (*models.Order, *services.ServiceError) {
	return m.placeFn(ctx, sessionID, req)
}
func (m *mockOrderService) CreateOrder(_ context.Context, _ models.Cart, _ *models.PlaceOrderRequest) (*models.Order, *services.ServiceError) {
	return nil, nil
}
func (m *mockOrderService) GetOrder(_ context.Context, id string) (*models.Order, *services.ServiceError) {
	return nil, &services.ServiceError{StatusCode: http.StatusNotFound, Message: "Order not found"}
}
func (m *mockOrderService) ListOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, *services.ServiceError) {
	return m.listFn(ctx, status)
}
func (m *mockOrderService) Advance(ctx context.Context, id string, next models.OrderStatus) (*models.Order, *services.ServiceError) {
	return m.advanceFn(ctx, id, next)
}
func (m *mockOrderService) StartCooking(ctx context.Context, id string) (*models.Order, *services.ServiceError) {
	return m.advanceFn(ctx, id, models.StatusInKitchen)
}
func (m *mockOrderService) MarkReady(ctx context.Context, id string) (*models.Order, *services.ServiceError) {
	return m.advanceFn(ctx, id, models.StatusReady)
}
func (m *mockOrderService) Serve(ctx context.Context, id string) (*models.Order, *services.ServiceError) {
	return m.advanceFn(ctx, id, models.StatusServed)
}
func (m *mockOrderService) KitchenQueue(_ context.Context, _ time.Time) []models.KitchenTicket {
	return m.queue
}
func (m *mockOrderService) Tracking(_ context.Context) models.OrderTracking {
	return models.OrderTracking{}
}
func (m *mockOrderService) ApplyKitchenEvent(_ context.Context, _ models.KitchenEvent) error {
	return nil
}

// --- Mock ReservationService ---

type mockReservationService struct {
	createFn func(ctx context.Context, req *models.CreateReservationRequest) (*models.Reservation, *services.ServiceError)
	statusFn func(ctx context.Context, id string, status models.ReservationStatus) (*models.Reservation, *services.ServiceError)
	forDate  map[string][]models.Reservation
}

func (m *mockReservationService) Load(_ context.Context) error { return nil }
func (m *mockReservationService) ListReservations(_ context.Context, _ models.ReservationStatus) ([]models.Reservation, *services.ServiceError) {
	return nil, nil
}
func (m *mockReservationService) CreateReservation(ctx context.Context, req *models.CreateReservationRequest) (*models.Reservation, *services.ServiceError) {
	return m.createFn(ctx, req)
}
func (m *mockReservationService) UpdateReservation(_ context.Context, _ string, _ *models.UpdateReservationRequest) (*models.Reservation, *services.ServiceError) {
	return nil, nil
}
func (m *mockReservationService) UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) (*models.Reservation, *services.ServiceError) {
	return m.statusFn(ctx, id, status)
}
func (m *mockReservationService) ForDate(_ context.Context, date string) []models.Reservation {
	return m.forDate[date]
}
func (m *mockReservationService) Upcoming(_ context.Context, _ time.Time) []models.Reservation {
	return nil
}
func (m *mockReservationService) Stats(_ context.Context) models.ReservationStats {
	return models.ReservationStats{}
}

// --- Mock MenuService ---

type mockMenuService struct {
	listFn   func(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, *services.ServiceError)
	imageFn  func(ctx context.Context, id string) (string, *services.ServiceError)
	uploadFn func(ctx context.Context, id, contentType string, body io.Reader) (string, *services.ServiceError)
}

func (m *mockMenuService) ListItems(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, *services.ServiceError) {
	return m.listFn(ctx, filter)
}
func (m *mockMenuService) GroupedItems(_ context.Context, _ models.MenuFilter) ([]models.MenuCategory, *services.ServiceError) {
	return nil, nil
}
func (m *mockMenuService) GetItem(_ context.Context, id, lang string) (*models.MenuItem, *services.ServiceError) {
	return &models.MenuItem{ID: id, Name: lang}, nil
}
func (m *mockMenuService) ImageURL(ctx context.Context, id string) (string, *services.ServiceError) {
	return m.imageFn(ctx, id)
}
func (m *mockMenuService) UploadImage(ctx context.Context, id, contentType string, body io.Reader) (string, *services.ServiceError) {
	return m.uploadFn(ctx, id, contentType, body)
}

// --- Mock PreferenceService ---

type mockPreferenceService struct {
	prefs models.Preferences
}

func (m *mockPreferenceService) GetPreferences(_ context.Context, _ string) models.Preferences {
	return m.prefs
}
func (m *mockPreferenceService) UpdatePreferences(_ context.Context, _ string, req *models.UpdatePreferencesRequest) (models.Preferences, *services.ServiceError) {
	if req.Language != nil {
		m.prefs.Language = *req.Language
	}
	return m.prefs, nil
}

// --- Mock AuthService ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, sessionID string, req *models.LoginRequest) (*models.LoginResponse, *services.ServiceError) {
	args := m.Called(ctx, sessionID, req.Username, req.Password)
	var resp *models.LoginResponse
	if v := args.Get(0); v != nil {
		resp = v.(*models.LoginResponse)
	}
	var svcErr *services.ServiceError
	if v := args.Get(1); v != nil {
		svcErr = v.(*services.ServiceError)
	}
	return resp, svcErr
}
func (m *MockAuthService) Logout(ctx context.Context, sessionID string) *services.ServiceError {
	args := m.Called(ctx, sessionID)
	if v := args.Get(0); v != nil {
		return v.(*services.ServiceError)
	}
	return nil
}
func (m *MockAuthService) CurrentUser(_ context.Context, _ string) (*models.User, *services.ServiceError) {
	return nil, &services.ServiceError{StatusCode: http.StatusUnauthorized, Message: "Not signed in"}
}
func (m *MockAuthService) ParseToken(_ string) (*models.User, error) {
	return nil, nil
}

// --- Mock InventoryService ---

type mockInventoryService struct {
	restockFn func(ctx context.Context, id string, quantity float64, actor string) (*models.InventoryItem, *services.ServiceError)
	items     []models.InventoryItem
}

func (m *mockInventoryService) Load(_ context.Context) error { return nil }
func (m *mockInventoryService) ListItems(_ context.Context, _ models.InventoryFilter) []models.InventoryItem {
	return m.items
}
func (m *mockInventoryService) GetItem(_ context.Context, _ string) (*models.InventoryItem, *services.ServiceError) {
	return nil, nil
}
func (m *mockInventoryService) CreateItem(_ context.Context, req *models.CreateInventoryItemRequest) (*models.InventoryItem, *services.ServiceError) {
	return &models.InventoryItem{ID: "inv-new", Name: req.Name}, nil
}
func (m *mockInventoryService) UpdateItem(_ context.Context, _ string, _ *models.UpdateInventoryItemRequest) (*models.InventoryItem, *services.ServiceError) {
	return nil, nil
}
func (m *mockInventoryService) Restock(ctx context.Context, id string, quantity float64, actor string) (*models.InventoryItem, *services.ServiceError) {
	return m.restockFn(ctx, id, quantity, actor)
}
func (m *mockInventoryService) Adjust(_ context.Context, _ string, _ float64, _ string) (*models.InventoryItem, *services.ServiceError) {
	return nil, nil
}
func (m *mockInventoryService) LowStock(_ context.Context) []models.InventoryItem {
	return nil
}
func (m *mockInventoryService) TotalValue(_ context.Context) models.InventoryValue {
	return models.InventoryValue{}
}
func (m *mockInventoryService) Adjustments(_ context.Context, _ string) ([]models.StockAdjustment, *services.ServiceError) {
	return nil, nil
}

// --- Mock ReviewService ---

type mockReviewService struct {
	listFn func(ctx context.Context, rating int) ([]models.Review, *services.ServiceError)
}

func (m *mockReviewService) Load(_ context.Context) error { return nil }
func (m *mockReviewService) ListReviews(ctx context.Context, rating int) ([]models.Review, *services.ServiceError) {
	return m.listFn(ctx, rating)
}
func (m *mockReviewService) CreateReview(_ context.Context, req *models.CreateReviewRequest) (*models.Review, *services.ServiceError) {
	return &models.Review{ID: "r-1", CustomerName: req.CustomerName, Rating: req.Rating}, nil
}
func (m *mockReviewService) SetVerified(_ context.Context, id string, verified bool) (*models.Review, *services.ServiceError) {
	return &models.Review{ID: id, Verified: verified}, nil
}
func (m *mockReviewService) Stats(_ context.Context) models.ReviewStats {
	return models.ReviewStats{}
}

// --- Mock BillingService ---

type mockBillingService struct {
	findFn func(ctx context.Context, table string) (*models.Bill, *services.ServiceError)
}

func (m *mockBillingService) FindActiveBill(ctx context.Context, table string) (*models.Bill, *services.ServiceError) {
	return m.findFn(ctx, table)
}

// --- Helpers ---

// withUser installs the session middleware and a fixed signed-in user.
func withUser(r *gin.Engine, user *models.User) *gin.Engine {
	r.Use(middleware.Session())
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.UserContextKey, user)
			c.Set(middleware.UserIDContextKey, user.ID)
			c.Set(middleware.RoleContextKey, string(user.Role))
		}
		c.Next()
	})
	return r
}
