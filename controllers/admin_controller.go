package controllers

import (
	"net/http"

	"github.com/Soukthavilay/qr-order/services"
	"github.com/gin-gonic/gin"
)

// BillingController serves the POS bill lookup.
type BillingController struct {
	billingService services.BillingService
}

func NewBillingController(billingService services.BillingService) *BillingController {
	return &BillingController{billingService: billingService}
}

// GetBill handles GET /pos/bills/:table.
func (bc *BillingController) GetBill(ctx *gin.Context) {
	bill, svcErr := bc.billingService.FindActiveBill(ctx.Request.Context(), ctx.Param("table"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"bill": bill})
}

// AdminController serves the analytics and integrations dashboards.
type AdminController struct {
	analyticsService   services.AnalyticsService
	integrationService services.IntegrationService
}

func NewAdminController(analyticsService services.AnalyticsService, integrationService services.IntegrationService) *AdminController {
	return &AdminController{analyticsService: analyticsService, integrationService: integrationService}
}

// Summary handles GET /analytics/summary.
func (ac *AdminController) Summary(ctx *gin.Context) {
	summary, svcErr := ac.analyticsService.Summary(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// Integrations handles GET /integrations.
func (ac *AdminController) Integrations(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"integrations": ac.integrationService.ListIntegrations(ctx.Request.Context())})
}
