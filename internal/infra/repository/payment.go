package repository

import (
	"context"
	"log/slog"

	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"
	"tour-booking/internal/usecase/shared"
)

type PaymentRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx, logger: slog.Default()}
}

const createPaymentSQL = `
INSERT INTO payments (id, reservation_id, amount, method, status, paid_at)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *PaymentRepository) Create(ctx context.Context, p *shared.PaymentRecord) error {
	_, err := r.db.Exec(ctx, createPaymentSQL,
		p.ID,
		p.ReservationID,
		p.Amount,
		string(p.Method),
		string(p.Status),
		p.PaidAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "payment already exists", err)
		}
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr(r.logger, infra.KindForeignKeyViolated, "payment references unknown reservation", err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to create payment", err)
	}
	return nil
}
