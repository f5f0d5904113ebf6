package request

type RecordPaymentRequest struct {
	Method string `json:"method" binding:"required,oneof=CASH CARD TRANSFER"`
}
