package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PolicyView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	NoticeDays       int       `json:"notice_days"`
	RefundPercentage int       `json:"refund_percentage"`
}

type ProductListItem struct {
	ID             uuid.UUID  `json:"id"`
	Kind           string     `json:"kind"`
	Name           string     `json:"name"`
	UnitPrice      int64      `json:"unit_price"`
	AvailableSeats int        `json:"available_seats"`
	PolicyID       uuid.UUID  `json:"policy_id"`
	StartDate      *time.Time `json:"start_date,omitempty"`
}

type CatalogQueries interface {
	ListPolicies(ctx context.Context) ([]*PolicyView, error)
	ListProducts(ctx context.Context) ([]*ProductListItem, error)
}

type CatalogViewRepo interface {
	FindAllPolicies(ctx context.Context) ([]*PolicyView, error)
	FindAllProducts(ctx context.Context) ([]*ProductListItem, error)
}

type catalogQueriesImpl struct {
	repo CatalogViewRepo
}

func NewCatalogQueries(repo CatalogViewRepo) CatalogQueries {
	return &catalogQueriesImpl{repo: repo}
}

func (q *catalogQueriesImpl) ListPolicies(ctx context.Context) ([]*PolicyView, error) {
	return q.repo.FindAllPolicies(ctx)
}

func (q *catalogQueriesImpl) ListProducts(ctx context.Context) ([]*ProductListItem, error) {
	return q.repo.FindAllProducts(ctx)
}
