package repository

import (
	"context"

	"github.com/Soukthavilay/qr-order/models"
	"gorm.io/gorm"
)

// ReservationRepository persists table bookings.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	Update(ctx context.Context, reservation *models.Reservation) error
	FindAll(ctx context.Context) ([]models.Reservation, error)
}

// GormReservationRepository implements ReservationRepository using GORM.
type GormReservationRepository struct {
	db *gorm.DB
}

func NewGormReservationRepository(db *gorm.DB) ReservationRepository {
	return &GormReservationRepository{db: db}
}

func (r *GormReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *GormReservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

func (r *GormReservationRepository) FindAll(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Order("date ASC, time ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}
