package controllers

import (
	"net/http"
	"strconv"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviewService services.ReviewService
}

func NewReviewController(reviewService services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// ListReviews handles GET /reviews?rating=. Without rating every review is listed.
func (rc *ReviewController) ListReviews(ctx *gin.Context) {
	rating := 0
	if raw := ctx.Query("rating"); raw != "" {
		r, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
			return
		}
		rating = r
	}

	reviews, svcErr := rc.reviewService.ListReviews(ctx.Request.Context(), rating)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	page, limit := parsePaginationParams(ctx)
	items, meta := paginate(reviews, page, limit)
	ctx.JSON(http.StatusOK, gin.H{"reviews": items, "meta": meta})
}

// Stats handles GET /reviews/stats.
func (rc *ReviewController) Stats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"stats": rc.reviewService.Stats(ctx.Request.Context())})
}

// CreateReview handles POST /reviews.
func (rc *ReviewController) CreateReview(ctx *gin.Context) {
	var req models.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	review, svcErr := rc.reviewService.CreateReview(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"review": review})
}

// UpdateReview handles PATCH /reviews/:id (staff moderation).
func (rc *ReviewController) UpdateReview(ctx *gin.Context) {
	var req models.UpdateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	review, svcErr := rc.reviewService.SetVerified(ctx.Request.Context(), ctx.Param("id"), *req.Verified)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"review": review})
}
