package models

import (
	"time"
)

// ReservationStatus is a state of a table booking.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCompleted, ReservationCancelled},
	ReservationCompleted: {},
	ReservationCancelled: {},
}

// IsValid reports whether s is a known reservation state.
func (s ReservationStatus) IsValid() bool {
	_, ok := reservationTransitions[s]
	return ok
}

// CanTransitionTo reports whether s -> next is allowed.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range reservationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

const (
	// DateLayout is the calendar date format used by reservations.
	DateLayout = "2006-01-02"
	// ClockLayout is the time-of-day format used by reservations.
	ClockLayout = "15:04"
)

// Reservation is a table booking.
type Reservation struct {
	ID              string            `json:"id" gorm:"type:varchar(64);primaryKey"`
	CustomerName    string            `json:"customer_name" gorm:"not null"`
	CustomerPhone   string            `json:"customer_phone" gorm:"not null"`
	CustomerEmail   string            `json:"customer_email,omitempty"`
	Date            string            `json:"date" gorm:"type:varchar(10);index;not null"`
	Time            string            `json:"time" gorm:"type:varchar(5);not null"`
	PartySize       int               `json:"party_size" gorm:"not null"`
	Status          ReservationStatus `json:"status" gorm:"type:varchar(20);index;not null"`
	SpecialRequests string            `json:"special_requests,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// IsPastDate reports whether the reservation's date is before now's date.
func (r Reservation) IsPastDate(now time.Time) bool {
	return r.Date < now.Format(DateLayout)
}

// CreateReservationRequest is the body of POST /reservations.
type CreateReservationRequest struct {
	CustomerName    string `json:"customer_name" binding:"required,max=100"`
	CustomerPhone   string `json:"customer_phone" binding:"required,max=32"`
	CustomerEmail   string `json:"customer_email" binding:"omitempty,email"`
	Date            string `json:"date" binding:"required,calendar_date"`
	Time            string `json:"time" binding:"required,clock_time"`
	PartySize       int    `json:"party_size" binding:"required,min=1,max=20"`
	SpecialRequests string `json:"special_requests" binding:"omitempty,max=500"`
}

// UpdateReservationRequest is a partial update; nil fields are left alone.
type UpdateReservationRequest struct {
	CustomerName    *string `json:"customer_name" binding:"omitempty,max=100"`
	CustomerPhone   *string `json:"customer_phone" binding:"omitempty,max=32"`
	CustomerEmail   *string `json:"customer_email" binding:"omitempty,email"`
	Date            *string `json:"date" binding:"omitempty,calendar_date"`
	Time            *string `json:"time" binding:"omitempty,clock_time"`
	PartySize       *int    `json:"party_size" binding:"omitempty,min=1,max=20"`
	SpecialRequests *string `json:"special_requests" binding:"omitempty,max=500"`
}

// UpdateReservationStatusRequest is the body of PATCH /reservations/:id/status.
type UpdateReservationStatusRequest struct {
	Status ReservationStatus `json:"status" binding:"required"`
}

// ReservationStats counts reservations per status.
type ReservationStats map[ReservationStatus]int
