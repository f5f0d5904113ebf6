package repository

import (
	"context"
	"log/slog"

	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"
	"tour-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// InventoryRepository keeps the seat counter on the product row itself.
// The conditional single-statement UPDATE makes Reserve atomic without
// an explicit transaction: concurrent callers serialize on the row lock
// and the guard re-evaluates after each write.
type InventoryRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewInventoryRepository(dbtx db.DBTX) *InventoryRepository {
	return &InventoryRepository{db: dbtx, logger: slog.Default()}
}

const reserveSeatsSQL = `
UPDATE products
SET available_seats = available_seats - $2
WHERE id = $1 AND available_seats >= $2`

func (r *InventoryRepository) Reserve(ctx context.Context, productID uuid.UUID, count int) error {
	if count < 1 {
		return errs.Newf("seat count must be at least 1, got %d", count)
	}
	tag, err := r.db.Exec(ctx, reserveSeatsSQL, productID, count)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to reserve seats", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to probe product", err)
	}
	if !exists {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "product not found", nil)
	}
	return infra.WrapRepoErr(r.logger, infra.KindConflict, "not enough seats available", nil)
}

const releaseSeatsSQL = `
UPDATE products
SET available_seats = available_seats + $2
WHERE id = $1`

func (r *InventoryRepository) Release(ctx context.Context, productID uuid.UUID, count int) error {
	tag, err := r.db.Exec(ctx, releaseSeatsSQL, productID, count)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to release seats", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "product not found", nil)
	}
	return nil
}
