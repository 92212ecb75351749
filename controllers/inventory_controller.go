package controllers

import (
	"net/http"

	"github.com/Soukthavilay/qr-order/middleware"
	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/gin-gonic/gin"
)

// InventoryController handles stock management for staff.
type InventoryController struct {
	inventoryService services.InventoryService
}

func NewInventoryController(inventoryService services.InventoryService) *InventoryController {
	return &InventoryController{inventoryService: inventoryService}
}

// ListItems handles GET /inventory?category=&search=.
func (ic *InventoryController) ListItems(ctx *gin.Context) {
	var filter models.InventoryFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	items := ic.inventoryService.ListItems(ctx.Request.Context(), filter)
	page, limit := parsePaginationParams(ctx)
	paged, meta := paginate(items, page, limit)
	ctx.JSON(http.StatusOK, gin.H{"items": paged, "meta": meta})
}

// GetItem handles GET /inventory/:id.
func (ic *InventoryController) GetItem(ctx *gin.Context) {
	item, svcErr := ic.inventoryService.GetItem(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"item": item, "level": item.Level()})
}

// CreateItem handles POST /inventory.
func (ic *InventoryController) CreateItem(ctx *gin.Context) {
	var req models.CreateInventoryItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	item, svcErr := ic.inventoryService.CreateItem(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateItem handles PUT /inventory/:id.
func (ic *InventoryController) UpdateItem(ctx *gin.Context) {
	var req models.UpdateInventoryItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	item, svcErr := ic.inventoryService.UpdateItem(ctx.Request.Context(), ctx.Param("id"), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"item": item})
}

// Restock handles POST /inventory/:id/restock.
func (ic *InventoryController) Restock(ctx *gin.Context) {
	var req models.RestockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	item, svcErr := ic.inventoryService.Restock(ctx.Request.Context(), ctx.Param("id"), req.Quantity, actorName(ctx))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"item": item})
}

// Adjust handles POST /inventory/:id/adjust.
func (ic *InventoryController) Adjust(ctx *gin.Context) {
	var req models.AdjustStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	item, svcErr := ic.inventoryService.Adjust(ctx.Request.Context(), ctx.Param("id"), req.Stock, actorName(ctx))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"item": item})
}

// Adjustments handles GET /inventory/:id/adjustments.
func (ic *InventoryController) Adjustments(ctx *gin.Context) {
	adjustments, svcErr := ic.inventoryService.Adjustments(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"adjustments": adjustments})
}

// LowStock handles GET /inventory/low-stock.
func (ic *InventoryController) LowStock(ctx *gin.Context) {
	items := ic.inventoryService.LowStock(ctx.Request.Context())
	ctx.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// TotalValue handles GET /inventory/value.
func (ic *InventoryController) TotalValue(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, ic.inventoryService.TotalValue(ctx.Request.Context()))
}

func actorName(ctx *gin.Context) string {
	if user := middleware.GetUser(ctx); user != nil {
		return user.Username
	}
	return ""
}
