package routes

import (
	"github.com/Soukthavilay/qr-order/controllers"
	"github.com/Soukthavilay/qr-order/middleware"
	"github.com/Soukthavilay/qr-order/models"
	"github.com/gin-gonic/gin"
)

// Controllers bundles every controller the router needs.
type Controllers struct {
	App         *controllers.AppController
	Auth        *controllers.AuthController
	Preferences *controllers.PreferenceController
	Menu        *controllers.MenuController
	Cart        *controllers.CartController
	Orders      *controllers.OrderController
	Billing     *controllers.BillingController
	Reservation *controllers.ReservationController
	Review      *controllers.ReviewController
	Inventory   *controllers.InventoryController
	Admin       *controllers.AdminController
}

// RegisterAllRoutes mounts every route group. Session and Authenticate must
// already be installed on r.
func RegisterAllRoutes(r *gin.Engine, c Controllers, loginLimiter *middleware.RateLimiter) {
	RegisterAppRoutes(r, c.App, c.Preferences)
	RegisterAuthRoutes(r, c.Auth, loginLimiter)
	RegisterMenuRoutes(r, c.Menu)
	RegisterCartRoutes(r, c.Cart)
	RegisterOrderRoutes(r, c.Orders)
	RegisterPOSRoutes(r, c.Billing)
	RegisterReservationRoutes(r, c.Reservation)
	RegisterReviewRoutes(r, c.Review)
	RegisterInventoryRoutes(r, c.Inventory)
	RegisterAdminRoutes(r, c.Admin)
}

func RegisterAppRoutes(r *gin.Engine, ac *controllers.AppController, pc *controllers.PreferenceController) {
	r.GET("/navigate", ac.Navigate)
	r.GET("/i18n", ac.Translations)
	r.GET("/i18n/:key", ac.Translate)
	r.GET("/preferences", pc.GetPreferences)
	r.PUT("/preferences", pc.UpdatePreferences)
}

func RegisterAuthRoutes(r *gin.Engine, ac *controllers.AuthController, limiter *middleware.RateLimiter) {
	auth := r.Group("/auth")
	auth.POST("/login", middleware.RateLimit(limiter), ac.Login)
	auth.POST("/logout", ac.Logout)
	auth.GET("/me", ac.Me)
}

func RegisterMenuRoutes(r *gin.Engine, mc *controllers.MenuController) {
	menu := r.Group("/menu")
	menu.GET("", mc.ListItems)
	menu.GET("/grouped", mc.GroupedItems)
	menu.GET("/:id", mc.GetItem)
	menu.GET("/:id/image-url", mc.ImageURL)
	menu.POST("/:id/image", middleware.RequireUser(), middleware.AdminOnly(), mc.UploadImage)
}

func RegisterCartRoutes(r *gin.Engine, cc *controllers.CartController) {
	cart := r.Group("/cart")
	cart.GET("", cc.GetCart)
	cart.DELETE("", cc.ClearCart)
	cart.POST("/items", cc.AddItem)
	cart.PUT("/items/:id", cc.UpdateItem)
	cart.DELETE("/items/:id", cc.RemoveItem)
}

func RegisterOrderRoutes(r *gin.Engine, oc *controllers.OrderController) {
	orders := r.Group("/orders")

	// Guest routes
	orders.POST("", oc.PlaceOrder)
	orders.GET("/tracking", oc.Tracking)
	orders.GET("/:id", oc.GetOrder)

	// Staff routes
	orders.GET("", middleware.RequireRole(models.RoleAdmin, models.RoleWaiter, models.RoleKitchen), oc.ListOrders)
	orders.PATCH("/:id/status", middleware.RequireRole(models.RoleAdmin, models.RoleWaiter, models.RoleKitchen), oc.UpdateStatus)
	orders.POST("/:id/serve", middleware.RequireRole(models.RoleAdmin, models.RoleWaiter), oc.Serve)

	kitchen := r.Group("/kitchen")
	kitchen.Use(middleware.RequireRole(models.RoleAdmin, models.RoleWaiter, models.RoleKitchen))
	kitchen.GET("/orders", oc.KitchenQueue)
	kitchen.POST("/orders/:id/start", middleware.RequireRole(models.RoleAdmin, models.RoleKitchen), oc.StartCooking)
	kitchen.POST("/orders/:id/ready", middleware.RequireRole(models.RoleAdmin, models.RoleKitchen), oc.MarkReady)
}

func RegisterPOSRoutes(r *gin.Engine, bc *controllers.BillingController) {
	pos := r.Group("/pos")
	pos.Use(middleware.RequireRole(models.RoleAdmin, models.RoleWaiter))
	pos.GET("/bills/:table", bc.GetBill)
}

func RegisterReservationRoutes(r *gin.Engine, rc *controllers.ReservationController) {
	reservations := r.Group("/reservations")
	reservations.POST("", rc.CreateReservation)

	staff := reservations.Group("")
	staff.Use(middleware.RequireRole(models.RoleAdmin, models.RoleWaiter))
	staff.GET("", rc.ListReservations)
	staff.GET("/today", rc.Today)
	staff.GET("/upcoming", rc.Upcoming)
	staff.GET("/stats", rc.Stats)
	staff.PATCH("/:id", rc.UpdateReservation)
	staff.PATCH("/:id/status", rc.UpdateStatus)
}

func RegisterReviewRoutes(r *gin.Engine, rc *controllers.ReviewController) {
	reviews := r.Group("/reviews")
	reviews.GET("", rc.ListReviews)
	reviews.GET("/stats", rc.Stats)
	reviews.POST("", rc.CreateReview)
	reviews.PATCH("/:id", middleware.RequireRole(models.RoleAdmin, models.RoleWaiter), rc.UpdateReview)
}

func RegisterInventoryRoutes(r *gin.Engine, ic *controllers.InventoryController) {
	inventory := r.Group("/inventory")
	inventory.Use(middleware.RequireRole(models.RoleAdmin, models.RoleKitchen))
	inventory.GET("", ic.ListItems)
	inventory.POST("", ic.CreateItem)
	inventory.GET("/low-stock", ic.LowStock)
	inventory.GET("/value", ic.TotalValue)
	inventory.GET("/:id", ic.GetItem)
	inventory.PUT("/:id", ic.UpdateItem)
	inventory.POST("/:id/restock", ic.Restock)
	inventory.POST("/:id/adjust", ic.Adjust)
	inventory.GET("/:id/adjustments", ic.Adjustments)
}

func RegisterAdminRoutes(r *gin.Engine, ac *controllers.AdminController) {
	admin := r.Group("")
	admin.Use(middleware.RequireUser(), middleware.AdminOnly())
	admin.GET("/analytics/summary", ac.Summary)
	admin.GET("/integrations", ac.Integrations)
}
