package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidPersonCount  = errors.New("person count must be at least 1")
	ErrPersonCountTooHigh  = errors.New("person count exceeds the allowed maximum")
	ErrNegativeAmount      = errors.New("total amount cannot be negative")
	ErrAmbiguousProductRef = errors.New("reservation must reference exactly one of package or destination")
	ErrMissingCustomer     = errors.New("customer id is required")
)

// InvalidTransitionError reports a status change not allowed from the
// current state, along with the states that would have been legal.
type InvalidTransitionError struct {
	Current   Status
	Requested Status
	Allowed   []Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition reservation from %s to %s (allowed: %v)",
		e.Current, e.Requested, e.Allowed)
}

// ProductRef points at the bookable product backing a reservation:
// exactly one of packageID or destinationID is set.
type ProductRef struct {
	packageID     *uuid.UUID
	destinationID *uuid.UUID
}

func NewPackageRef(packageID uuid.UUID) ProductRef {
	return ProductRef{packageID: &packageID}
}

func NewDestinationRef(destinationID uuid.UUID) ProductRef {
	return ProductRef{destinationID: &destinationID}
}

// NewProductRef builds a ref from optional ids, enforcing the
// exactly-one invariant at construction.
func NewProductRef(packageID, destinationID *uuid.UUID) (ProductRef, error) {
	if (packageID == nil) == (destinationID == nil) {
		return ProductRef{}, ErrAmbiguousProductRef
	}
	if packageID != nil {
		return NewPackageRef(*packageID), nil
	}
	return NewDestinationRef(*destinationID), nil
}

func (r ProductRef) IsPackage() bool     { return r.packageID != nil }
func (r ProductRef) IsDestination() bool { return r.destinationID != nil }

// ProductID returns the id of whichever product is referenced.
func (r ProductRef) ProductID() uuid.UUID {
	if r.packageID != nil {
		return *r.packageID
	}
	if r.destinationID != nil {
		return *r.destinationID
	}
	return uuid.Nil
}

func (r ProductRef) PackageID() *uuid.UUID {
	if r.packageID == nil {
		return nil
	}
	id := *r.packageID
	return &id
}

func (r ProductRef) DestinationID() *uuid.UUID {
	if r.destinationID == nil {
		return nil
	}
	id := *r.destinationID
	return &id
}

type Reservation struct {
	id          uuid.UUID
	customerID  uuid.UUID
	productRef  ProductRef
	status      Status
	totalAmount int64
	personCount int
	createdAt   time.Time
	updatedAt   time.Time
}

func NewReservation(
	customerID uuid.UUID,
	ref ProductRef,
	personCount int,
	maxPersonCount int,
	totalAmount int64,
	now time.Time,
) (*Reservation, error) {
	if customerID == uuid.Nil {
		return nil, ErrMissingCustomer
	}
	if !ref.IsPackage() && !ref.IsDestination() {
		return nil, ErrAmbiguousProductRef
	}
	if personCount < 1 {
		return nil, ErrInvalidPersonCount
	}
	if maxPersonCount > 0 && personCount > maxPersonCount {
		return nil, ErrPersonCountTooHigh
	}
	if totalAmount < 0 {
		return nil, ErrNegativeAmount
	}

	return &Reservation{
		id:          uuid.New(),
		customerID:  customerID,
		productRef:  ref,
		status:      StatusPending,
		totalAmount: totalAmount,
		personCount: personCount,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructReservation(
	id, customerID uuid.UUID,
	ref ProductRef,
	status Status,
	totalAmount int64,
	personCount int,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		customerID:  customerID,
		productRef:  ref,
		status:      status,
		totalAmount: totalAmount,
		personCount: personCount,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// TransitionTo applies a status change, rejecting any edge not in the
// lifecycle graph. The receiver is left untouched on failure.
func (r *Reservation) TransitionTo(target Status, now time.Time) error {
	if !r.status.CanTransitionTo(target) {
		return &InvalidTransitionError{
			Current:   r.status,
			Requested: target,
			Allowed:   r.status.NextStates(),
		}
	}
	r.status = target
	r.updatedAt = now
	return nil
}

func (r *Reservation) IsCancellable() bool {
	return r.status.CanTransitionTo(StatusCancelled)
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) CustomerID() uuid.UUID  { return r.customerID }
func (r *Reservation) ProductRef() ProductRef { return r.productRef }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) TotalAmount() int64     { return r.totalAmount }
func (r *Reservation) PersonCount() int       { return r.personCount }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time   { return r.updatedAt }
