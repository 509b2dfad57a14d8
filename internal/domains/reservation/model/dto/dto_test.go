package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shuttle/internal/domains/reservation/model"
	"shuttle/internal/domains/reservation/model/dto"
	gModel "shuttle/shared/model"
	"shuttle/shared/timezone"
)

func TestCreateReservationRequest_ToModel(t *testing.T) {
	req := dto.CreateReservationRequest{
		CourtID:         "court-id-123",
		ReservationDate: "2030-01-02",
		StartHour:       9,
		EndHour:         11,
	}

	userID := "test-user-id"
	reservation, err := req.ToModel(userID)

	assert.NoError(t, err)
	assert.NotEmpty(t, reservation.ID, "expected ID to be generated")
	assert.Equal(t, req.CourtID, reservation.CourtID)
	assert.Equal(t, 2030, reservation.ReservationDate.Year())
	assert.Equal(t, req.StartHour, reservation.StartHour)
	assert.Equal(t, req.EndHour, reservation.EndHour)
	assert.Equal(t, 2, reservation.Duration)
	assert.Equal(t, model.StoreStatusWaiting, reservation.Status)
	assert.Equal(t, userID, reservation.CreatedBy)
	assert.Equal(t, userID, reservation.ModifiedBy)
	assert.False(t, reservation.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestCreateReservationRequest_ToModel_InvalidDate(t *testing.T) {
	req := dto.CreateReservationRequest{
		CourtID:         "court-id-123",
		ReservationDate: "02/01/2030",
		StartHour:       9,
		EndHour:         11,
	}

	_, err := req.ToModel("test-user-id")

	assert.Error(t, err)
}

func TestReservationResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	reservation := model.Reservation{
		ID:              "reservation-id-1",
		CourtID:         "court-id-123",
		ReservationDate: time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC),
		StartHour:       9,
		EndHour:         11,
		Duration:        2,
		Status:          model.StoreStatusWaiting,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}

	var response dto.ReservationResponse
	err := response.FromModel(reservation)

	assert.NoError(t, err)
	assert.Equal(t, reservation.ID, response.ID)
	assert.Equal(t, reservation.CourtID, response.CourtID)
	assert.Equal(t, "2030-01-02", response.ReservationDate)
	assert.Equal(t, model.StatusPending, response.Status, "stored waiting should surface as pending")
	assert.Equal(t, reservation.CreatedBy, response.CreatedBy)
}

func TestReservationResponse_FromModel_InvalidStatus(t *testing.T) {
	reservation := model.Reservation{
		ID:     "reservation-id-1",
		Status: "garbage",
	}

	var response dto.ReservationResponse
	err := response.FromModel(reservation)

	assert.Error(t, err)
}

func TestGetReservationsResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	reservations := []model.Reservation{
		{
			ID:              "reservation-id-1",
			CourtID:         "court-id-123",
			ReservationDate: time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC),
			StartHour:       9,
			EndHour:         11,
			Duration:        2,
			Status:          model.StoreStatusWaiting,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  "test-user",
				ModifiedBy: "test-user",
			},
		},
		{
			ID:              "reservation-id-2",
			CourtID:         "court-id-123",
			ReservationDate: time.Date(2030, 1, 3, 0, 0, 0, 0, time.UTC),
			StartHour:       14,
			EndHour:         16,
			Duration:        2,
			Status:          model.StoreStatusConfirmed,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  "test-user",
				ModifiedBy: "test-user",
			},
		},
	}

	totalData := 15
	limit := 10

	var response dto.GetReservationsResponse
	err := response.FromModels(reservations, totalData, limit)

	assert.NoError(t, err)
	assert.Equal(t, totalData, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	assert.Len(t, response.Reservations, len(reservations))
	assert.Equal(t, model.StatusPending, response.Reservations[0].Status)
	assert.Equal(t, model.StatusConfirmed, response.Reservations[1].Status)
}

func TestGetReservationsResponse_FromModels_EmptyList(t *testing.T) {
	var response dto.GetReservationsResponse
	err := response.FromModels(nil, 0, 10)

	assert.NoError(t, err)
	assert.Equal(t, 0, response.TotalData)
	assert.Len(t, response.Reservations, 0)
}
