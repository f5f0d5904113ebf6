package response

import (
	"time"

	"tour-booking/internal/usecase/commands"
	"tour-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID            uuid.UUID  `json:"id"`
	CustomerID    uuid.UUID  `json:"customer_id"`
	PackageID     *uuid.UUID `json:"package_id,omitempty"`
	DestinationID *uuid.UUID `json:"destination_id,omitempty"`
	ProductName   string     `json:"product_name"`
	Status        string     `json:"status"`
	PersonCount   int        `json:"person_count"`
	TotalAmount   int64      `json:"total_amount"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ReservationListResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductName string    `json:"product_name"`
	Status      string    `json:"status"`
	PersonCount int       `json:"person_count"`
	TotalAmount int64     `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type CancelReservationResponse struct {
	Reservation      *ReservationResponse `json:"reservation"`
	RefundPercentage int                  `json:"refund_percentage"`
	RefundAmount     int64                `json:"refund_amount"`
	Reason           string               `json:"reason"`
}

// View and response fields are aligned by name, so mapping is delegated
// to copier instead of being spelled out per field.
func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromReservationList(items []*queries.ReservationListItem) []*ReservationListResponse {
	res := make([]*ReservationListResponse, len(items))
	for i, it := range items {
		var resp ReservationListResponse
		_ = copier.Copy(&resp, it)
		res[i] = &resp
	}
	return res
}

func FromCancelResult(result *commands.CancelReservationResult) *CancelReservationResponse {
	return &CancelReservationResponse{
		Reservation:      FromReservationView(result.Reservation),
		RefundPercentage: result.Refund.RefundPercentage,
		RefundAmount:     result.Refund.RefundAmount,
		Reason:           result.Refund.Reason,
	}
}
