//go:build unit

package builder

import (
	"time"

	domres "tour-booking/internal/domain/reservation"
	reqdto "tour-booking/internal/handler/dto/request"
	"tour-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	CustomerID     uuid.UUID
	PackageID      *uuid.UUID
	DestinationID  *uuid.UUID
	PersonCount    int
	MaxPersonCount int
	TotalAmount    int64
	Now            time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	packageID := uuid.New()
	return &ReservationBuilder{
		CustomerID:     uuid.New(),
		PackageID:      &packageID,
		PersonCount:    2,
		MaxPersonCount: 50,
		TotalAmount:    300000,
		Now:            time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *ReservationBuilder) WithPersonCount(n int) *ReservationBuilder {
	b.PersonCount = n
	return b
}

func (b *ReservationBuilder) WithTotalAmount(amount int64) *ReservationBuilder {
	b.TotalAmount = amount
	return b
}

func (b *ReservationBuilder) WithCustomerID(id uuid.UUID) *ReservationBuilder {
	b.CustomerID = id
	return b
}

// AsDestination switches the product reference from a package to a
// destination.
func (b *ReservationBuilder) AsDestination() *ReservationBuilder {
	destinationID := uuid.New()
	b.PackageID = nil
	b.DestinationID = &destinationID
	return b
}

func (b *ReservationBuilder) BuildDomain() (*domres.Reservation, error) {
	ref, err := domres.NewProductRef(b.PackageID, b.DestinationID)
	if err != nil {
		return nil, err
	}
	return domres.NewReservation(b.CustomerID, ref, b.PersonCount, b.MaxPersonCount, b.TotalAmount, b.Now)
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		PackageID:     b.PackageID,
		DestinationID: b.DestinationID,
		PersonCount:   b.PersonCount,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:            uuid.New(),
		CustomerID:    b.CustomerID,
		PackageID:     b.PackageID,
		DestinationID: b.DestinationID,
		ProductName:   "Atacama Desert Tour",
		Status:        domres.StatusPending.String(),
		PersonCount:   b.PersonCount,
		TotalAmount:   b.TotalAmount,
		CreatedAt:     b.Now,
		UpdatedAt:     b.Now,
	}
}
