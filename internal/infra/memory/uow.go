package memory

import (
	"context"

	"tour-booking/internal/usecase/queries"
	"tour-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// PaymentRepo adapts the store to the payment write port; the method
// set cannot live on Store directly because Create is already taken by
// the reservation port.
type PaymentRepo struct {
	s *Store
}

func (s *Store) PaymentRepo() *PaymentRepo {
	return &PaymentRepo{s: s}
}

func (r *PaymentRepo) Create(ctx context.Context, p *shared.PaymentRecord) error {
	return r.s.CreatePayment(ctx, p)
}

// Views adapts the store to the read-side repository interfaces.
type Views struct {
	s *Store
}

func (s *Store) Views() *Views {
	return &Views{s: s}
}

func (v *Views) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	return v.s.FindViewByID(ctx, id)
}

func (v *Views) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	return v.s.FindByCustomerID(ctx, customerID, limit)
}

// UoW runs the closure against the live store and restores a snapshot
// of the mutable tables when it fails, approximating a rollback.
type UoW struct {
	s *Store
}

func NewUoW(s *Store) shared.UnitOfWork {
	return &UoW{s: s}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	reservations, payments := u.s.snapshot()

	err := fn(ctx, &memTx{s: u.s})
	if err != nil {
		u.s.restore(reservations, payments)
		return err
	}
	return nil
}

type memTx struct {
	s *Store
}

func (t *memTx) Reservations() shared.ReservationRepository {
	return t.s
}

func (t *memTx) Payments() shared.PaymentRepository {
	return t.s.PaymentRepo()
}
