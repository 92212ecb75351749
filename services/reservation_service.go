package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Soukthavilay/qr-order/models"
	aws_pkg "github.com/Soukthavilay/qr-order/pkg/aws"
	"github.com/Soukthavilay/qr-order/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationService manages table bookings.
type ReservationService interface {
	Load(ctx context.Context) error
	ListReservations(ctx context.Context, status models.ReservationStatus) ([]models.Reservation, *ServiceError)
	CreateReservation(ctx context.Context, req *models.CreateReservationRequest) (*models.Reservation, *ServiceError)
	UpdateReservation(ctx context.Context, id string, req *models.UpdateReservationRequest) (*models.Reservation, *ServiceError)
	UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) (*models.Reservation, *ServiceError)
	ForDate(ctx context.Context, date string) []models.Reservation
	Upcoming(ctx context.Context, after time.Time) []models.Reservation
	Stats(ctx context.Context) models.ReservationStats
}

type reservationServiceImpl struct {
	repo   repository.ReservationRepository
	events eventSink
	logger *zap.Logger

	mu           sync.RWMutex
	reservations []models.Reservation
}

// NewReservationService creates a new ReservationService. repo may be nil.
func NewReservationService(repo repository.ReservationRepository, opts EventOptions, logger *zap.Logger) ReservationService {
	return &reservationServiceImpl{
		repo:         repo,
		events:       opts.sink(logger),
		logger:       logger,
		reservations: []models.Reservation{},
	}
}

func (s *reservationServiceImpl) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	reservations, err := s.repo.FindAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.reservations = reservations
	s.mu.Unlock()
	return nil
}

func (s *reservationServiceImpl) ListReservations(_ context.Context, status models.ReservationStatus) ([]models.Reservation, *ServiceError) {
	if status != "" && !status.IsValid() {
		return nil, badRequest("Invalid reservation status")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *reservationServiceImpl) CreateReservation(ctx context.Context, req *models.CreateReservationRequest) (*models.Reservation, *ServiceError) {
	now := time.Now()
	reservation := models.Reservation{
		ID:              uuid.NewString(),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		Date:            req.Date,
		Time:            req.Time,
		PartySize:       req.PartySize,
		Status:          models.ReservationPending,
		SpecialRequests: req.SpecialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if reservation.IsPastDate(now) {
		return nil, badRequest("Reservation date is in the past")
	}

	s.mu.Lock()
	if s.repo != nil {
		if err := s.repo.Create(ctx, &reservation); err != nil {
			s.mu.Unlock()
			s.logger.Error("Failed to persist reservation", zap.Error(err))
			return nil, internal("Failed to create reservation")
		}
	}
	next := make([]models.Reservation, len(s.reservations), len(s.reservations)+1)
	copy(next, s.reservations)
	s.reservations = append(next, reservation)
	s.mu.Unlock()

	s.logger.Info("Reservation created",
		zap.String("reservation_id", reservation.ID),
		zap.String("date", reservation.Date),
		zap.Int("party_size", reservation.PartySize))
	s.events.publish(ctx, models.EventReservationCreated, models.RecordEvent{
		Type:      models.EventReservationCreated,
		ID:        reservation.ID,
		Timestamp: now,
	})
	s.events.count(ctx, aws_pkg.MetricReservationsBooked, nil)
	return &reservation, nil
}

// replace applies mutate to a copy of reservation id and swaps it into a new
// slice once the mirror accepted it.
func (s *reservationServiceImpl) replace(ctx context.Context, id string, mutate func(*models.Reservation) *ServiceError) (*models.Reservation, *ServiceError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, notFound("Reservation not found")
	}

	updated := s.reservations[idx]
	if svcErr := mutate(&updated); svcErr != nil {
		return nil, svcErr
	}
	updated.UpdatedAt = time.Now()

	if s.repo != nil {
		if err := s.repo.Update(ctx, &updated); err != nil {
			s.logger.Error("Failed to persist reservation", zap.String("reservation_id", id), zap.Error(err))
			return nil, internal("Failed to update reservation")
		}
	}

	next := make([]models.Reservation, len(s.reservations))
	copy(next, s.reservations)
	next[idx] = updated
	s.reservations = next
	return &updated, nil
}

func (s *reservationServiceImpl) UpdateReservation(ctx context.Context, id string, req *models.UpdateReservationRequest) (*models.Reservation, *ServiceError) {
	return s.replace(ctx, id, func(r *models.Reservation) *ServiceError {
		if req.CustomerName != nil {
			r.CustomerName = *req.CustomerName
		}
		if req.CustomerPhone != nil {
			r.CustomerPhone = *req.CustomerPhone
		}
		if req.CustomerEmail != nil {
			r.CustomerEmail = *req.CustomerEmail
		}
		if req.Date != nil {
			r.Date = *req.Date
			if r.IsPastDate(time.Now()) {
				return badRequest("Reservation date is in the past")
			}
		}
		if req.Time != nil {
			r.Time = *req.Time
		}
		if req.PartySize != nil {
			r.PartySize = *req.PartySize
		}
		if req.SpecialRequests != nil {
			r.SpecialRequests = *req.SpecialRequests
		}
		return nil
	})
}

func (s *reservationServiceImpl) UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) (*models.Reservation, *ServiceError) {
	if !status.IsValid() {
		return nil, badRequest("Invalid reservation status")
	}
	updated, svcErr := s.replace(ctx, id, func(r *models.Reservation) *ServiceError {
		if !r.Status.CanTransitionTo(status) {
			return conflict("invalid status transition")
		}
		r.Status = status
		return nil
	})
	if svcErr != nil {
		return nil, svcErr
	}
	s.logger.Info("Reservation status changed", zap.String("reservation_id", id), zap.String("status", string(status)))
	return updated, nil
}

// ForDate lists the reservations on date sorted by time.
func (s *reservationServiceImpl) ForDate(_ context.Context, date string) []models.Reservation {
	s.mu.RLock()
	out := make([]models.Reservation, 0)
	for _, r := range s.reservations {
		if r.Date == date {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// Upcoming lists reservations dated after the given day, by date then time.
func (s *reservationServiceImpl) Upcoming(_ context.Context, after time.Time) []models.Reservation {
	day := after.Format(models.DateLayout)
	s.mu.RLock()
	out := make([]models.Reservation, 0)
	for _, r := range s.reservations {
		if r.Date > day {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}

func (s *reservationServiceImpl) Stats(_ context.Context) models.ReservationStats {
	stats := models.ReservationStats{
		models.ReservationPending:   0,
		models.ReservationConfirmed: 0,
		models.ReservationCompleted: 0,
		models.ReservationCancelled: 0,
	}
	s.mu.RLock()
	for _, r := range s.reservations {
		stats[r.Status]++
	}
	s.mu.RUnlock()
	return stats
}
