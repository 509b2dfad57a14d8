package model

import (
	"fmt"

	"shuttle/shared/failure"
	"shuttle/shared/model"
)

const (
	TableName  = "courts"
	EntityName = "court"

	FieldID     = "id"
	FieldNumber = "number"
	FieldStatus = "status"
	FieldImage  = "image"
)

const (
	StatusAvailable   = "available"
	StatusBooked      = "booked"
	StatusMaintenance = "maintenance"
)

// ParseStatus maps stored status text to the domain vocabulary. Unknown
// text is an error, never a silent default.
func ParseStatus(raw string) (string, error) {
	switch raw {
	case StatusAvailable, StatusBooked, StatusMaintenance:
		return raw, nil
	default:
		return "", failure.InternalError(fmt.Errorf("unknown court status %q", raw))
	}
}

type Court struct {
	ID     string `db:"id"`
	Number int    `db:"number"`
	Status string `db:"status"`
	Image  string `db:"image"`
	model.Metadata
}

// Name is the display label derived from the court number.
func (c Court) Name() string {
	return fmt.Sprintf("Court %d", c.Number)
}
