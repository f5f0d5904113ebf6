package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tour-booking/internal/domain/reservation"
	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx, logger: slog.Default()}
}

const createReservationSQL = `
INSERT INTO reservations (id, customer_id, package_id, destination_id, status, person_count, total_amount, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	ref := res.ProductRef()
	_, err := r.db.Exec(ctx, createReservationSQL,
		res.ID(),
		res.CustomerID(),
		ref.PackageID(),
		ref.DestinationID(),
		res.Status().String(),
		res.PersonCount(),
		res.TotalAmount(),
		res.CreatedAt(),
		res.UpdatedAt(),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "reservation already exists", err)
		}
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr(r.logger, infra.KindForeignKeyViolated, "reservation references unknown row", err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to create reservation", err)
	}
	return nil
}

const findReservationByIDSQL = `
SELECT id, customer_id, package_id, destination_id, status, person_count, total_amount, created_at, updated_at
FROM reservations
WHERE id = $1`

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var (
		resID         uuid.UUID
		customerID    uuid.UUID
		packageID     *uuid.UUID
		destinationID *uuid.UUID
		rawStatus     string
		personCount   int
		totalAmount   int64
		createdAt     time.Time
		updatedAt     time.Time
	)

	err := r.db.QueryRow(ctx, findReservationByIDSQL, id).Scan(
		&resID, &customerID, &packageID, &destinationID,
		&rawStatus, &personCount, &totalAmount, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find reservation", err)
	}

	ref, err := reservation.NewProductRef(packageID, destinationID)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "corrupt product reference", err)
	}
	status, ok := reservation.ParseStatus(rawStatus)
	if !ok {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "corrupt reservation status", errors.New(rawStatus))
	}

	return reservation.ReconstructReservation(
		resID, customerID, ref, status, totalAmount, personCount, createdAt, updatedAt,
	), nil
}

const updateReservationStatusSQL = `
UPDATE reservations
SET status = $3, updated_at = $4
WHERE id = $1 AND status = $2`

// UpdateStatus is a conditional write: zero affected rows means the
// record is gone or another caller won the transition race, and the two
// cases are told apart with a follow-up existence probe.
func (r *ReservationRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	expected, target reservation.Status,
	at time.Time,
) error {
	tag, err := r.db.Exec(ctx, updateReservationStatusSQL, id, expected.String(), target.String(), at)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update reservation status", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, id).Scan(&exists); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to probe reservation", err)
	}
	if !exists {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "reservation not found", nil)
	}
	return infra.WrapRepoErr(r.logger, infra.KindConflict, "reservation status changed concurrently", nil)
}
