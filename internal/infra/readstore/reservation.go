package readstore

import (
	"context"
	"errors"
	"log/slog"

	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"
	"tour-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx, logger: slog.Default()}
}

const findReservationViewSQL = `
SELECT r.id, r.customer_id, r.package_id, r.destination_id, p.name,
       r.status, r.person_count, r.total_amount, r.created_at, r.updated_at
FROM reservations r
JOIN products p ON p.id = COALESCE(r.package_id, r.destination_id)
WHERE r.id = $1`

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	var view queries.ReservationView
	err := s.db.QueryRow(ctx, findReservationViewSQL, id).Scan(
		&view.ID,
		&view.CustomerID,
		&view.PackageID,
		&view.DestinationID,
		&view.ProductName,
		&view.Status,
		&view.PersonCount,
		&view.TotalAmount,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to read reservation", err)
	}
	return &view, nil
}

const listReservationsByCustomerSQL = `
SELECT r.id, p.name, r.status, r.person_count, r.total_amount, r.created_at
FROM reservations r
JOIN products p ON p.id = COALESCE(r.package_id, r.destination_id)
WHERE r.customer_id = $1
ORDER BY r.created_at DESC
LIMIT $2`

func (s *ReservationReadStore) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := s.db.Query(ctx, listReservationsByCustomerSQL, customerID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list reservations", err)
	}
	defer rows.Close()

	items := make([]*queries.ReservationListItem, 0)
	for rows.Next() {
		var item queries.ReservationListItem
		if err := rows.Scan(
			&item.ID,
			&item.ProductName,
			&item.Status,
			&item.PersonCount,
			&item.TotalAmount,
			&item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan reservation row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to iterate reservation rows", err)
	}
	return items, nil
}
