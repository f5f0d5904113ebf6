package readstore

import (
	"context"
	"log/slog"

	"tour-booking/internal/infra"
	"tour-booking/internal/infra/db"
	"tour-booking/internal/usecase/queries"
)

type CatalogReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx, logger: slog.Default()}
}

const listPoliciesSQL = `
SELECT id, name, notice_days, refund_percentage
FROM cancellation_policies
ORDER BY name`

func (s *CatalogReadStore) FindAllPolicies(ctx context.Context) ([]*queries.PolicyView, error) {
	rows, err := s.db.Query(ctx, listPoliciesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list policies", err)
	}
	defer rows.Close()

	items := make([]*queries.PolicyView, 0)
	for rows.Next() {
		var item queries.PolicyView
		if err := rows.Scan(&item.ID, &item.Name, &item.NoticeDays, &item.RefundPercentage); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan policy row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to iterate policy rows", err)
	}
	return items, nil
}

const listProductsSQL = `
SELECT id, kind, name, unit_price, available_seats, policy_id, start_date
FROM products
ORDER BY name`

func (s *CatalogReadStore) FindAllProducts(ctx context.Context) ([]*queries.ProductListItem, error) {
	rows, err := s.db.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list products", err)
	}
	defer rows.Close()

	items := make([]*queries.ProductListItem, 0)
	for rows.Next() {
		var item queries.ProductListItem
		if err := rows.Scan(
			&item.ID,
			&item.Kind,
			&item.Name,
			&item.UnitPrice,
			&item.AvailableSeats,
			&item.PolicyID,
			&item.StartDate,
		); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan product row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to iterate product rows", err)
	}
	return items, nil
}
