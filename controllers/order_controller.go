package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/Soukthavilay/qr-order/middleware"
	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/gin-gonic/gin"
)

// OrderController serves checkout, order tracking and the kitchen display.
type OrderController struct {
	orderService services.OrderService
}

func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// PlaceOrder handles POST /orders. The session's cart becomes the order.
func (oc *OrderController) PlaceOrder(ctx *gin.Context) {
	var req models.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := oc.orderService.PlaceOrder(ctx.Request.Context(), middleware.GetSessionID(ctx), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"order": order})
}

// ListOrders handles GET /orders?status=.
func (oc *OrderController) ListOrders(ctx *gin.Context) {
	orders, svcErr := oc.orderService.ListOrders(ctx.Request.Context(), models.OrderStatus(ctx.Query("status")))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	page, limit := parsePaginationParams(ctx)
	items, meta := paginate(orders, page, limit)
	ctx.JSON(http.StatusOK, gin.H{"orders": items, "meta": meta})
}

// GetOrder handles GET /orders/:id.
func (oc *OrderController) GetOrder(ctx *gin.Context) {
	order, svcErr := oc.orderService.GetOrder(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// Tracking handles GET /orders/tracking.
func (oc *OrderController) Tracking(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, oc.orderService.Tracking(ctx.Request.Context()))
}

// UpdateStatus handles PATCH /orders/:id/status.
func (oc *OrderController) UpdateStatus(ctx *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := oc.orderService.Advance(ctx.Request.Context(), ctx.Param("id"), req.Status)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// Serve handles POST /orders/:id/serve.
func (oc *OrderController) Serve(ctx *gin.Context) {
	oc.transition(ctx, oc.orderService.Serve)
}

// KitchenQueue handles GET /kitchen/orders.
func (oc *OrderController) KitchenQueue(ctx *gin.Context) {
	tickets := oc.orderService.KitchenQueue(ctx.Request.Context(), time.Now())
	ctx.JSON(http.StatusOK, gin.H{"orders": tickets, "count": len(tickets)})
}

// StartCooking handles POST /kitchen/orders/:id/start.
func (oc *OrderController) StartCooking(ctx *gin.Context) {
	oc.transition(ctx, oc.orderService.StartCooking)
}

// MarkReady handles POST /kitchen/orders/:id/ready.
func (oc *OrderController) MarkReady(ctx *gin.Context) {
	oc.transition(ctx, oc.orderService.MarkReady)
}

func (oc *OrderController) transition(ctx *gin.Context, step func(ctx context.Context, id string) (*models.Order, *services.ServiceError)) {
	order, svcErr := step(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}
