package model

import (
	"fmt"

	"shuttle/shared/failure"
)

// Rows keep the store vocabulary; API payloads use the domain vocabulary.
const (
	StoreStatusWaiting   = "waiting"
	StoreStatusConfirmed = "confirmed"
	StoreStatusCancelled = "cancelled"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// ParseStoreStatus maps stored status text to the domain vocabulary.
// Unknown text is an error, never a silent default.
func ParseStoreStatus(raw string) (string, error) {
	switch raw {
	case StoreStatusWaiting:
		return StatusPending, nil
	case StoreStatusConfirmed:
		return StatusConfirmed, nil
	case StoreStatusCancelled:
		return StatusCancelled, nil
	default:
		return "", failure.InternalError(fmt.Errorf("unknown reservation status %q", raw))
	}
}

// ToStoreStatus maps a domain status to its stored text.
func ToStoreStatus(status string) (string, error) {
	switch status {
	case StatusPending:
		return StoreStatusWaiting, nil
	case StatusConfirmed:
		return StoreStatusConfirmed, nil
	case StatusCancelled:
		return StoreStatusCancelled, nil
	default:
		return "", failure.BadRequestFromString(fmt.Sprintf("unknown reservation status %q", status))
	}
}
