package response

import (
	"time"

	"tour-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PaymentResponse struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	PaidAt        time.Time `json:"paid_at"`
}

type SalesReportResponse struct {
	From         time.Time        `json:"from"`
	To           time.Time        `json:"to"`
	PaymentCount int              `json:"payment_count"`
	TotalAmount  int64            `json:"total_amount"`
	ByMethod     map[string]int64 `json:"by_method"`
}

func FromPaymentView(v *queries.PaymentView) *PaymentResponse {
	var resp PaymentResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromPaymentList(items []*queries.PaymentView) []*PaymentResponse {
	res := make([]*PaymentResponse, len(items))
	for i, it := range items {
		res[i] = FromPaymentView(it)
	}
	return res
}

func FromSalesReport(v *queries.SalesReportView) *SalesReportResponse {
	var resp SalesReportResponse
	_ = copier.Copy(&resp, v)
	return &resp
}
