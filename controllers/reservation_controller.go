package controllers

import (
	"net/http"
	"time"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	reservationService services.ReservationService
}

func NewReservationController(reservationService services.ReservationService) *ReservationController {
	return &ReservationController{reservationService: reservationService}
}

// ListReservations handles GET /reservations?status=.
func (rc *ReservationController) ListReservations(ctx *gin.Context) {
	reservations, svcErr := rc.reservationService.ListReservations(ctx.Request.Context(), models.ReservationStatus(ctx.Query("status")))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	page, limit := parsePaginationParams(ctx)
	items, meta := paginate(reservations, page, limit)
	ctx.JSON(http.StatusOK, gin.H{"reservations": items, "meta": meta})
}

// Today handles GET /reservations/today. ?date= picks another day.
func (rc *ReservationController) Today(ctx *gin.Context) {
	date := ctx.DefaultQuery("date", time.Now().Format(models.DateLayout))
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}
	reservations := rc.reservationService.ForDate(ctx.Request.Context(), date)
	ctx.JSON(http.StatusOK, gin.H{"date": date, "reservations": reservations})
}

// Upcoming handles GET /reservations/upcoming.
func (rc *ReservationController) Upcoming(ctx *gin.Context) {
	reservations := rc.reservationService.Upcoming(ctx.Request.Context(), time.Now())
	ctx.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

// Stats handles GET /reservations/stats.
func (rc *ReservationController) Stats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"stats": rc.reservationService.Stats(ctx.Request.Context())})
}

// CreateReservation handles POST /reservations.
func (rc *ReservationController) CreateReservation(ctx *gin.Context) {
	var req models.CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	reservation, svcErr := rc.reservationService.CreateReservation(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"reservation": reservation})
}

// UpdateReservation handles PATCH /reservations/:id.
func (rc *ReservationController) UpdateReservation(ctx *gin.Context) {
	var req models.UpdateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	reservation, svcErr := rc.reservationService.UpdateReservation(ctx.Request.Context(), ctx.Param("id"), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"reservation": reservation})
}

// UpdateStatus handles PATCH /reservations/:id/status.
func (rc *ReservationController) UpdateStatus(ctx *gin.Context) {
	var req models.UpdateReservationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	reservation, svcErr := rc.reservationService.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), req.Status)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"reservation": reservation})
}
