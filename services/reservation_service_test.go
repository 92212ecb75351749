package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Soukthavilay/qr-order/models"
	"github.com/Soukthavilay/qr-order/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReservationRequest(date, clock string) *models.CreateReservationRequest {
	return &models.CreateReservationRequest{
		CustomerName:  "Noy",
		CustomerPhone: "020 5555 1234",
		Date:          date,
		Time:          clock,
		PartySize:     4,
	}
}

func dayOffset(days int) string {
	return time.Now().AddDate(0, 0, days).Format(models.DateLayout)
}

func TestReservationService_CreateIsPending(t *testing.T) {
	ctx := context.Background()
	repo := newMockReservationRepo()
	sns := &mockSNSPublisher{}
	svc := services.NewReservationService(repo, services.EventOptions{Publisher: sns, Topic: "arn:topic"}, testLogger())

	r, svcErr := svc.CreateReservation(ctx, newReservationRequest(dayOffset(1), "19:00"))
	require.Nil(t, svcErr)
	assert.Equal(t, models.ReservationPending, r.Status)
	assert.NotEmpty(t, r.ID)
	assert.Contains(t, repo.reservations, r.ID)
	assert.Equal(t, 1, sns.count())
}

func TestReservationService_CreateRejectsPastDate(t *testing.T) {
	svc := services.NewReservationService(nil, services.EventOptions{}, testLogger())

	_, svcErr := svc.CreateReservation(context.Background(), newReservationRequest(dayOffset(-1), "19:00"))
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)

	list, _ := svc.ListReservations(context.Background(), "")
	assert.Empty(t, list)
}

func TestReservationService_UpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	svc := services.NewReservationService(nil, services.EventOptions{}, testLogger())
	r, _ := svc.CreateReservation(ctx, newReservationRequest(dayOffset(2), "18:00"))

	size := 6
	clock := "20:30"
	updated, svcErr := svc.UpdateReservation(ctx, r.ID, &models.UpdateReservationRequest{PartySize: &size, Time: &clock})
	require.Nil(t, svcErr)
	assert.Equal(t, 6, updated.PartySize)
	assert.Equal(t, "20:30", updated.Time)
	assert.Equal(t, "Noy", updated.CustomerName)
}

func TestReservationService_UpdateUnknownID(t *testing.T) {
	ctx := context.Background()
	svc := services.NewReservationService(nil, services.EventOptions{}, testLogger())
	r, _ := svc.CreateReservation(ctx, newReservationRequest(dayOffset(2), "18:00"))

	name := "Other"
	_, svcErr := svc.UpdateReservation(ctx, "missing", &models.UpdateReservationRequest{CustomerName: &name})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)

	list, _ := svc.ListReservations(ctx, "")
	require.Len(t, list, 1)
	assert.Equal(t, r.CustomerName, list[0].CustomerName)
}

func TestReservationService_UpdateRejectsPastDate(t *testing.T) {
	ctx := context.Background()
	svc := services.NewReservationService(nil, services.EventOptions{}, testLogger())
	r, _ := svc.CreateReservation(ctx, newReservationRequest(dayOffset(2), "18:00"))

	past := "2000-01-01"
	_, svcErr := svc.UpdateReservation(ctx, r.ID, &models.UpdateReservationRequest{Date: &past})
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)

	yesterday := dayOffset(-1)
	_, svcErr = svc.UpdateReservation(ctx, r.ID, &models.UpdateReservationRequest{Date: &yesterday})
	require.NotNil(t, svcErr)

	list, _ := svc.ListReservations(ctx, "")
	require.Len(t, list, 1)
	assert.Equal(t, dayOffset(2), list[0].Date)
	assert.False(t, list[0].IsPastDate(time.Now()))

	today := dayOffset(0)
	updated, svcErr := svc.UpdateReservation(ctx, r.ID, &models.UpdateReservationRequest{Date: &today})
	require.Nil(t, svcErr)
	assert.Equal(t, today, updated.Date)
}

func TestReservationService_StatusLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := services.NewReservationService(nil, services.EventOptions{}, testLogger())
	r, _ := svc.CreateReservation(ctx, newReservationRequest(dayOffset(1), "12:00"))

	_, svcErr := svc.UpdateStatus(ctx, r.ID, models.ReservationCompleted)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)

	confirmed, svcErr := svc.UpdateStatus(ctx, r.ID, models.ReservationConfirmed)
	require.Nil(t, svcErr)
	assert.Equal(t, models.ReservationConfirmed, confirmed.Status)

	_, svcErr = svc.UpdateStatus(ctx, r.ID, "lost")
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)

	stats := svc.Stats(ctx)
	assert.Equal(t, 1, stats[models.ReservationConfirmed])
	assert.Equal(t, 0, stats[models.ReservationPending])
}

func TestReservationService_ForDateAndUpcoming(t *testing.T) {
	ctx := context.Background()
	svc := services.NewReservationService(nil, services.EventOptions{}, testLogger())
	today := dayOffset(0)
	_, _ = svc.CreateReservation(ctx, newReservationRequest(today, "20:00"))
	_, _ = svc.CreateReservation(ctx, newReservationRequest(today, "11:30"))
	_, _ = svc.CreateReservation(ctx, newReservationRequest(dayOffset(3), "09:00"))
	_, _ = svc.CreateReservation(ctx, newReservationRequest(dayOffset(1), "21:00"))

	forToday := svc.ForDate(ctx, today)
	require.Len(t, forToday, 2)
	assert.Equal(t, "11:30", forToday[0].Time)
	assert.Equal(t, "20:00", forToday[1].Time)

	upcoming := svc.Upcoming(ctx, time.Now())
	require.Len(t, upcoming, 2)
	assert.Equal(t, dayOffset(1), upcoming[0].Date)
	assert.Equal(t, dayOffset(3), upcoming[1].Date)
}

func TestReservationService_MirrorFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	repo := newMockReservationRepo()
	svc := services.NewReservationService(repo, services.EventOptions{}, testLogger())
	r, _ := svc.CreateReservation(ctx, newReservationRequest(dayOffset(1), "19:00"))
	repo.err = errMirrorDown

	_, svcErr := svc.UpdateStatus(ctx, r.ID, models.ReservationCancelled)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)

	list, _ := svc.ListReservations(ctx, models.ReservationPending)
	assert.Len(t, list, 1)
}
