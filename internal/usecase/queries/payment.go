package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PaymentView struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	PaidAt        time.Time `json:"paid_at"`
}

// SalesReportView aggregates completed payments inside a date range.
type SalesReportView struct {
	From         time.Time        `json:"from"`
	To           time.Time        `json:"to"`
	PaymentCount int              `json:"payment_count"`
	TotalAmount  int64            `json:"total_amount"`
	ByMethod     map[string]int64 `json:"by_method"`
}

type PaymentQueries interface {
	ListByReservation(ctx context.Context, actor uuid.UUID, reservationID uuid.UUID) ([]*PaymentView, error)
	SalesReport(ctx context.Context, from, to time.Time) (*SalesReportView, error)
}

type PaymentViewRepo interface {
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*PaymentView, error)
	CompletedInRange(ctx context.Context, from, to time.Time) ([]*PaymentView, error)
}

type paymentQueriesImpl struct {
	payments     PaymentViewRepo
	reservations ReservationViewRepo
}

func NewPaymentQueries(payments PaymentViewRepo, reservations ReservationViewRepo) PaymentQueries {
	return &paymentQueriesImpl{payments: payments, reservations: reservations}
}

func (q *paymentQueriesImpl) ListByReservation(ctx context.Context, actor uuid.UUID, reservationID uuid.UUID) ([]*PaymentView, error) {
	res, err := q.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.CustomerID != actor {
		return nil, ErrViewNotFound
	}
	return q.payments.FindByReservationID(ctx, reservationID)
}

func (q *paymentQueriesImpl) SalesReport(ctx context.Context, from, to time.Time) (*SalesReportView, error) {
	rows, err := q.payments.CompletedInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &SalesReportView{
		From:     from,
		To:       to,
		ByMethod: make(map[string]int64),
	}
	for _, p := range rows {
		report.PaymentCount++
		report.TotalAmount += p.Amount
		report.ByMethod[p.Method] += p.Amount
	}
	return report, nil
}
