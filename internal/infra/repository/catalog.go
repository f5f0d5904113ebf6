package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tour-booking/internal/domain/policy"
	"tour-booking/internal/domain/product"
	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CatalogRepository serves read-only product and policy snapshots to
// the command side.
type CatalogRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCatalogRepository(dbtx db.DBTX) *CatalogRepository {
	return &CatalogRepository{db: dbtx, logger: slog.Default()}
}

const findProductByIDSQL = `
SELECT id, kind, name, unit_price, available_seats, policy_id, start_date
FROM products
WHERE id = $1`

func (r *CatalogRepository) ProductByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	var (
		prodID    uuid.UUID
		kind      string
		name      string
		unitPrice int64
		seats     int
		policyID  uuid.UUID
		startDate *time.Time
	)

	err := r.db.QueryRow(ctx, findProductByIDSQL, id).Scan(
		&prodID, &kind, &name, &unitPrice, &seats, &policyID, &startDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "product not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find product", err)
	}

	prod, err := product.NewProduct(prodID, product.Kind(kind), name, unitPrice, seats, policyID, startDate)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "corrupt product row", err)
	}
	return prod, nil
}

const findPolicyByIDSQL = `
SELECT id, name, notice_days, refund_percentage
FROM cancellation_policies
WHERE id = $1`

func (r *CatalogRepository) PolicyByID(ctx context.Context, id uuid.UUID) (policy.Policy, error) {
	var (
		polID      uuid.UUID
		name       string
		noticeDays int
		refundPct  int
	)

	err := r.db.QueryRow(ctx, findPolicyByIDSQL, id).Scan(&polID, &name, &noticeDays, &refundPct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.Policy{}, infra.WrapRepoErr(r.logger, infra.KindNotFound, "cancellation policy not found", err)
		}
		return policy.Policy{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find cancellation policy", err)
	}

	pol, err := policy.NewPolicy(polID, name, noticeDays, refundPct)
	if err != nil {
		return policy.Policy{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "corrupt policy row", err)
	}
	return pol, nil
}
