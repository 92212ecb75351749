package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Soukthavilay/qr-order/models"
	aws_pkg "github.com/Soukthavilay/qr-order/pkg/aws"
	"github.com/Soukthavilay/qr-order/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderLookup finds a placed order by id.
type OrderLookup interface {
	GetOrder(ctx context.Context, id string) (*models.Order, *ServiceError)
}

// ReviewService manages guest reviews.
type ReviewService interface {
	Load(ctx context.Context) error
	ListReviews(ctx context.Context, rating int) ([]models.Review, *ServiceError)
	CreateReview(ctx context.Context, req *models.CreateReviewRequest) (*models.Review, *ServiceError)
	SetVerified(ctx context.Context, id string, verified bool) (*models.Review, *ServiceError)
	Stats(ctx context.Context) models.ReviewStats
}

type reviewServiceImpl struct {
	repo   repository.ReviewRepository
	orders OrderLookup
	events eventSink
	logger *zap.Logger

	mu      sync.RWMutex
	reviews []models.Review
}

// NewReviewService creates a new ReviewService. repo and orders may be nil;
// without orders the order id is stored as given.
func NewReviewService(repo repository.ReviewRepository, orders OrderLookup, opts EventOptions, logger *zap.Logger) ReviewService {
	return &reviewServiceImpl{
		repo:    repo,
		orders:  orders,
		events:  opts.sink(logger),
		logger:  logger,
		reviews: []models.Review{},
	}
}

func (s *reviewServiceImpl) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	reviews, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	// Repository returns newest first; the arena is kept oldest first.
	for i, j := 0, len(reviews)-1; i < j; i, j = i+1, j-1 {
		reviews[i], reviews[j] = reviews[j], reviews[i]
	}
	s.mu.Lock()
	s.reviews = reviews
	s.mu.Unlock()
	return nil
}

// ListReviews returns reviews newest first. rating 0 lists every rating.
func (s *reviewServiceImpl) ListReviews(_ context.Context, rating int) ([]models.Review, *ServiceError) {
	if rating != 0 && (rating < models.MinRating || rating > models.MaxRating) {
		return nil, badRequest(ratingMessage())
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Review, 0, len(s.reviews))
	for i := len(s.reviews) - 1; i >= 0; i-- {
		if rating == 0 || s.reviews[i].Rating == rating {
			out = append(out, s.reviews[i])
		}
	}
	return out, nil
}

func ratingMessage() string {
	return fmt.Sprintf("Rating must be between %d and %d", models.MinRating, models.MaxRating)
}

func (s *reviewServiceImpl) CreateReview(ctx context.Context, req *models.CreateReviewRequest) (*models.Review, *ServiceError) {
	if req.Rating < models.MinRating || req.Rating > models.MaxRating {
		return nil, badRequest(ratingMessage())
	}

	review := models.Review{
		ID:           uuid.NewString(),
		OrderID:      req.OrderID,
		CustomerName: req.CustomerName,
		Rating:       req.Rating,
		Comment:      req.Comment,
		CreatedAt:    time.Now(),
	}
	if req.OrderID != "" && s.orders != nil {
		order, svcErr := s.orders.GetOrder(ctx, req.OrderID)
		if svcErr != nil {
			return nil, svcErr
		}
		review.Verified = order.Status == models.StatusServed
	}

	s.mu.Lock()
	if review.OrderID != "" {
		for _, existing := range s.reviews {
			if existing.OrderID == review.OrderID {
				s.mu.Unlock()
				return nil, conflict("Order already reviewed")
			}
		}
	}
	if s.repo != nil {
		if err := s.repo.Create(ctx, &review); err != nil {
			s.mu.Unlock()
			s.logger.Error("Failed to persist review", zap.Error(err))
			return nil, internal("Failed to create review")
		}
	}
	next := make([]models.Review, len(s.reviews), len(s.reviews)+1)
	copy(next, s.reviews)
	s.reviews = append(next, review)
	s.mu.Unlock()

	s.logger.Info("Review created", zap.String("review_id", review.ID), zap.Int("rating", review.Rating))
	s.events.publish(ctx, models.EventReviewCreated, models.RecordEvent{
		Type:      models.EventReviewCreated,
		ID:        review.ID,
		Timestamp: review.CreatedAt,
	})
	s.events.count(ctx, aws_pkg.MetricReviewsSubmitted, map[string]string{"Rating": fmt.Sprint(review.Rating)})
	return &review, nil
}

func (s *reviewServiceImpl) SetVerified(ctx context.Context, id string, verified bool) (*models.Review, *ServiceError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.reviews {
		if s.reviews[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, notFound("Review not found")
	}

	if s.repo != nil {
		if err := s.repo.SetVerified(ctx, id, verified); err != nil {
			s.logger.Error("Failed to persist review", zap.String("review_id", id), zap.Error(err))
			return nil, internal("Failed to update review")
		}
	}

	updated := s.reviews[idx]
	updated.Verified = verified
	next := make([]models.Review, len(s.reviews))
	copy(next, s.reviews)
	next[idx] = updated
	s.reviews = next
	return &updated, nil
}

func (s *reviewServiceImpl) Stats(_ context.Context) models.ReviewStats {
	s.mu.RLock()
	reviews := s.reviews
	s.mu.RUnlock()

	stats := models.ReviewStats{Total: len(reviews), Distribution: make([]models.RatingBucket, 0, models.MaxRating)}
	counts := make(map[int]int, models.MaxRating)
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		counts[r.Rating]++
		if r.IsPositive() {
			stats.Positive++
		}
	}
	if stats.Total > 0 {
		stats.AverageRating = decimal.NewFromInt(int64(sum)).
			Div(decimal.NewFromInt(int64(stats.Total))).
			Round(1).InexactFloat64()
	}
	for rating := models.MaxRating; rating >= models.MinRating; rating-- {
		bucket := models.RatingBucket{Rating: rating, Count: counts[rating]}
		if stats.Total > 0 {
			bucket.Percentage = decimal.NewFromInt(int64(counts[rating] * 100)).
				Div(decimal.NewFromInt(int64(stats.Total))).
				Round(1).InexactFloat64()
		}
		stats.Distribution = append(stats.Distribution, bucket)
	}
	return stats
}
