package model

import (
	"time"

	"shuttle/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID              = "id"
	FieldCourtID         = "court_id"
	FieldReservationDate = "reservation_date"
	FieldStartHour       = "start_hour"
	FieldEndHour         = "end_hour"
	FieldDuration        = "duration"
	FieldStatus          = "status"
	FieldCreatedBy       = "created_by"
)

type Reservation struct {
	ID              string    `db:"id"`
	CourtID         string    `db:"court_id"`
	ReservationDate time.Time `db:"reservation_date"`
	StartHour       int       `db:"start_hour"`
	EndHour         int       `db:"end_hour"`
	Duration        int       `db:"duration"`
	Status          string    `db:"status"`
	model.Metadata
}
