package controllers

import (
	"net/http"

	"github.com/Soukthavilay/qr-order/middleware"
	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/gin-gonic/gin"
)

type PreferenceController struct {
	preferenceService services.PreferenceService
}

func NewPreferenceController(preferenceService services.PreferenceService) *PreferenceController {
	return &PreferenceController{preferenceService: preferenceService}
}

// GetPreferences handles GET /preferences.
func (pc *PreferenceController) GetPreferences(ctx *gin.Context) {
	prefs := pc.preferenceService.GetPreferences(ctx.Request.Context(), middleware.GetSessionID(ctx))
	ctx.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// UpdatePreferences handles PUT /preferences.
func (pc *PreferenceController) UpdatePreferences(ctx *gin.Context) {
	var req models.UpdatePreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	prefs, svcErr := pc.preferenceService.UpdatePreferences(ctx.Request.Context(), middleware.GetSessionID(ctx), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"preferences": prefs})
}
