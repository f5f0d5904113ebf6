package response

import (
	"time"

	"tour-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type PolicyResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	NoticeDays       int       `json:"notice_days"`
	RefundPercentage int       `json:"refund_percentage"`
}

type ProductResponse struct {
	ID             uuid.UUID  `json:"id"`
	Kind           string     `json:"kind"`
	Name           string     `json:"name"`
	UnitPrice      int64      `json:"unit_price"`
	AvailableSeats int        `json:"available_seats"`
	PolicyID       uuid.UUID  `json:"policy_id"`
	StartDate      *time.Time `json:"start_date,omitempty"`
}

func FromPolicyList(items []*queries.PolicyView) []*PolicyResponse {
	res := make([]*PolicyResponse, len(items))
	for i, it := range items {
		res[i] = &PolicyResponse{
			ID:               it.ID,
			Name:             it.Name,
			NoticeDays:       it.NoticeDays,
			RefundPercentage: it.RefundPercentage,
		}
	}
	return res
}

func FromProductList(items []*queries.ProductListItem) []*ProductResponse {
	res := make([]*ProductResponse, len(items))
	for i, it := range items {
		res[i] = &ProductResponse{
			ID:             it.ID,
			Kind:           it.Kind,
			Name:           it.Name,
			UnitPrice:      it.UnitPrice,
			AvailableSeats: it.AvailableSeats,
			PolicyID:       it.PolicyID,
			StartDate:      it.StartDate,
		}
	}
	return res
}
