package api

import (
	"net/http"
	"time"

	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/internal/handler/httperr"
	"tour-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	paymentQueries queries.PaymentQueries
}

func NewReportHandler(paymentQueries queries.PaymentQueries) *ReportHandler {
	return &ReportHandler{paymentQueries: paymentQueries}
}

// @Summary Sales report
// @Description Aggregate completed payments between two dates
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param to query string true "End date (YYYY-MM-DD, exclusive)"
// @Success 200 {object} resdto.SalesReportResponse
// @Failure 400 {object} httperr.Response
// @Router /reports/sales [get]
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	from, err := time.Parse(time.DateOnly, c.Query("from"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid 'from' date, expected YYYY-MM-DD", nil)
		return
	}
	to, err := time.Parse(time.DateOnly, c.Query("to"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid 'to' date, expected YYYY-MM-DD", nil)
		return
	}
	if !from.Before(to) {
		httperr.AbortWithError(c, http.StatusBadRequest, errBadReportRange, "'from' must be before 'to'", nil)
		return
	}

	report, err := h.paymentQueries.SalesReport(c.Request.Context(), from, to)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSalesReport(report))
}
