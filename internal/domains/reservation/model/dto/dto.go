package dto

import (
	"time"

	"github.com/google/uuid"

	"shuttle/internal/domains/reservation/model"
	"shuttle/internal/domains/reservation/slots"
	"shuttle/shared"
	"shuttle/shared/constant"
	gDto "shuttle/shared/dto"
	gModel "shuttle/shared/model"
	"shuttle/shared/timezone"
)

type CreateReservationRequest struct {
	CourtID         string `json:"court_id"         validate:"required,uuid"`
	ReservationDate string `json:"reservation_date" validate:"required"`
	StartHour       int    `json:"start_hour"       validate:"required,min=6,max=21"`
	EndHour         int    `json:"end_hour"         validate:"required,min=7,max=22,gtfield=StartHour"`
}

func (c *CreateReservationRequest) ToModel(user string) (model.Reservation, error) {
	reservationDate, err := time.Parse(constant.DateOnlyFormat, c.ReservationDate)
	if err != nil {
		return model.Reservation{}, err
	}

	return model.Reservation{
		ID:              uuid.NewString(),
		CourtID:         c.CourtID,
		ReservationDate: reservationDate,
		StartHour:       c.StartHour,
		EndHour:         c.EndHour,
		Duration:        slots.Duration(c.StartHour, c.EndHour),
		Status:          model.StoreStatusWaiting,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=waiting confirmed cancelled"`
}

type ReservationResponse struct {
	ID              string `json:"id"`
	CourtID         string `json:"court_id"`
	ReservationDate string `json:"reservation_date"`
	StartHour       int    `json:"start_hour"`
	EndHour         int    `json:"end_hour"`
	Duration        int    `json:"duration"`
	Status          string `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(mod model.Reservation) error {
	status, err := model.ParseStoreStatus(mod.Status)
	if err != nil {
		return err
	}

	r.ID = mod.ID
	r.CourtID = mod.CourtID
	r.ReservationDate = mod.ReservationDate.Format(constant.DateOnlyFormat)
	r.StartHour = mod.StartHour
	r.EndHour = mod.EndHour
	r.Duration = mod.Duration
	r.Status = status
	r.Metadata.FromModel(mod.Metadata)

	return nil
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) error {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		if err := r.Reservations[i].FromModel(mod); err != nil {
			return err
		}
	}

	return nil
}

type AvailabilityResponse struct {
	CourtID    string `json:"court_id"`
	Date       string `json:"date"`
	StartHours []int  `json:"start_hours"`
	EndHours   []int  `json:"end_hours,omitempty"`
}

type StatsResponse struct {
	TotalReservations int `json:"total_reservations"`
	Pending           int `json:"pending"`
	Confirmed         int `json:"confirmed"`
	Cancelled         int `json:"cancelled"`
	TotalCourts       int `json:"total_courts"`
}
