package readstore

import (
	"context"
	"log/slog"
	"time"

	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"
	"tour-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PaymentReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewPaymentReadStore(dbtx db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: dbtx, logger: slog.Default()}
}

const listPaymentsByReservationSQL = `
SELECT id, reservation_id, amount, method, status, paid_at
FROM payments
WHERE reservation_id = $1
ORDER BY paid_at`

func (s *PaymentReadStore) FindByReservationID(ctx context.Context, reservationID uuid.UUID) ([]*queries.PaymentView, error) {
	rows, err := s.db.Query(ctx, listPaymentsByReservationSQL, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list payments", err)
	}
	defer rows.Close()
	return s.scanPayments(rows)
}

const listCompletedPaymentsSQL = `
SELECT id, reservation_id, amount, method, status, paid_at
FROM payments
WHERE status = 'COMPLETED' AND paid_at >= $1 AND paid_at < $2
ORDER BY paid_at`

func (s *PaymentReadStore) CompletedInRange(ctx context.Context, from, to time.Time) ([]*queries.PaymentView, error) {
	rows, err := s.db.Query(ctx, listCompletedPaymentsSQL, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list completed payments", err)
	}
	defer rows.Close()
	return s.scanPayments(rows)
}

func (s *PaymentReadStore) scanPayments(rows pgx.Rows) ([]*queries.PaymentView, error) {
	items := make([]*queries.PaymentView, 0)
	for rows.Next() {
		var item queries.PaymentView
		if err := rows.Scan(
			&item.ID,
			&item.ReservationID,
			&item.Amount,
			&item.Method,
			&item.Status,
			&item.PaidAt,
		); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan payment row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to iterate payment rows", err)
	}
	return items, nil
}
