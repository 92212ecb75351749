package controllers

import (
	"net/http"

	"github.com/Soukthavilay/qr-order/middleware"
	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService services.AuthService
}

func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	resp, svcErr := ac.authService.Login(ctx.Request.Context(), middleware.GetSessionID(ctx), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Logout handles POST /auth/logout.
func (ac *AuthController) Logout(ctx *gin.Context) {
	if svcErr := ac.authService.Logout(ctx.Request.Context(), middleware.GetSessionID(ctx)); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me handles GET /auth/me.
func (ac *AuthController) Me(ctx *gin.Context) {
	if user := middleware.GetUser(ctx); user != nil {
		ctx.JSON(http.StatusOK, gin.H{"user": user})
		return
	}
	ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
}
