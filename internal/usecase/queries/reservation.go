package queries

import (
	"context"
	"time"

	"tour-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrViewNotFound hides records that exist but belong to another
// customer, so callers cannot probe for foreign reservation ids.
var ErrViewNotFound = errs.New("not found")

// Read models (DTO for read side)
type ReservationView struct {
	ID            uuid.UUID  `json:"id"`
	CustomerID    uuid.UUID  `json:"customer_id"`
	PackageID     *uuid.UUID `json:"package_id,omitempty"`
	DestinationID *uuid.UUID `json:"destination_id,omitempty"`
	ProductName   string     `json:"product_name"`
	Status        string     `json:"status"`
	PersonCount   int        `json:"person_count"`
	TotalAmount   int64      `json:"total_amount"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID          uuid.UUID `json:"id"`
	ProductName string    `json:"product_name"`
	Status      string    `json:"status"`
	PersonCount int       `json:"person_count"`
	TotalAmount int64     `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem bypasses the ownership check for read-after-write
	// inside command flows.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*ReservationListItem, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit int32) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor uuid.UUID, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.CustomerID != actor {
		return nil, ErrViewNotFound
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *reservationQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*ReservationListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.repo.FindByCustomerID(ctx, customerID, int32(limit))
}
