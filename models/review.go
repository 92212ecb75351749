package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a guest's rating of an order.
type Review struct {
	ID           string    `json:"id" gorm:"type:varchar(64);primaryKey"`
	OrderID      string    `json:"order_id" gorm:"type:varchar(64);index"`
	CustomerName string    `json:"customer_name" gorm:"not null"`
	Rating       int       `json:"rating" gorm:"not null"`
	Comment      string    `json:"comment"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsPositive reports a rating of four stars or more.
func (r Review) IsPositive() bool {
	return r.Rating >= 4
}

// CreateReviewRequest is the body of POST /reviews. Rating is validated by
// the service so a missing rating gets the same message as an out of range one.
type CreateReviewRequest struct {
	OrderID      string `json:"order_id" binding:"omitempty,max=64"`
	CustomerName string `json:"customer_name" binding:"required,max=100"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment" binding:"omitempty,max=2000"`
}

// UpdateReviewRequest moderates a review. Rating and comment are immutable.
type UpdateReviewRequest struct {
	Verified *bool `json:"verified" binding:"required"`
}

// RatingBucket is the share of reviews with a given star count.
type RatingBucket struct {
	Rating     int     `json:"rating"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ReviewStats summarizes all reviews.
type ReviewStats struct {
	Total         int            `json:"total"`
	AverageRating float64        `json:"average_rating"`
	Positive      int            `json:"positive"`
	Distribution  []RatingBucket `json:"distribution"`
}
