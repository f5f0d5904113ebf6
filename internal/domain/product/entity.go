package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativePrice = errors.New("unit price cannot be negative")
	ErrNegativeSeats = errors.New("available seats cannot be negative")
)

type Kind string

const (
	KindPackage     Kind = "PACKAGE"
	KindDestination Kind = "DESTINATION"
)

// Product is a read-only snapshot of a bookable product (package or
// destination) taken from the catalog. Seat counts on a snapshot are
// informational; the inventory ledger is the only writer of the
// authoritative count.
type Product struct {
	id             uuid.UUID
	kind           Kind
	name           string
	unitPrice      int64
	availableSeats int
	policyID       uuid.UUID
	startDate      *time.Time // set for packages only
}

func NewProduct(
	id uuid.UUID,
	kind Kind,
	name string,
	unitPrice int64,
	availableSeats int,
	policyID uuid.UUID,
	startDate *time.Time,
) (*Product, error) {
	if unitPrice < 0 {
		return nil, ErrNegativePrice
	}
	if availableSeats < 0 {
		return nil, ErrNegativeSeats
	}
	return &Product{
		id:             id,
		kind:           kind,
		name:           name,
		unitPrice:      unitPrice,
		availableSeats: availableSeats,
		policyID:       policyID,
		startDate:      startDate,
	}, nil
}

func (p *Product) ID() uuid.UUID       { return p.id }
func (p *Product) Kind() Kind          { return p.kind }
func (p *Product) Name() string        { return p.name }
func (p *Product) UnitPrice() int64    { return p.unitPrice }
func (p *Product) AvailableSeats() int { return p.availableSeats }
func (p *Product) PolicyID() uuid.UUID { return p.policyID }

func (p *Product) StartDate() *time.Time {
	if p.startDate == nil {
		return nil
	}
	d := *p.startDate
	return &d
}

// TotalPrice is unit price times party size.
func (p *Product) TotalPrice(personCount int) int64 {
	return p.unitPrice * int64(personCount)
}

// ReferenceDate is the travel date cancellations are measured against:
// the start date for packages, or creation date plus the configured
// lead for destinations, which have no fixed start.
func (p *Product) ReferenceDate(reservedAt time.Time, destinationLeadDays int) time.Time {
	if p.startDate != nil {
		return *p.startDate
	}
	return reservedAt.AddDate(0, 0, destinationLeadDays)
}
