package request

import (
	"tour-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	PackageID     *uuid.UUID `json:"package_id,omitempty"`
	DestinationID *uuid.UUID `json:"destination_id,omitempty"`
	PersonCount   int        `json:"person_count" binding:"required,min=1"`
}

// ToDomain builds the product reference, rejecting requests that name
// both a package and a destination, or neither.
func (r CreateReservationRequest) ToDomain() (reservation.ProductRef, error) {
	return reservation.NewProductRef(r.PackageID, r.DestinationID)
}
