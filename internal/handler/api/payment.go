package api

import (
	"errors"
	"net/http"

	reqdto "tour-booking/internal/handler/dto/request"
	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/internal/handler/httperr"
	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/usecase/commands"
	"tour-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
	paymentQueries  queries.PaymentQueries
}

func NewPaymentHandler(
	paymentCommands commands.PaymentCommands,
	paymentQueries queries.PaymentQueries,
) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
		paymentQueries:  paymentQueries,
	}
}

// @Summary Record payment
// @Description Settle a pending reservation in full
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Reservation ID"
// @Param request body reqdto.RecordPaymentRequest true "Payment request"
// @Success 201 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/payments [post]
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	customerID, reservationID, ok := h.identityAndID(c)
	if !ok {
		return
	}

	var req reqdto.RecordPaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.paymentCommands.RecordPayment(c.Request.Context(), customerID, reservationID, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidPaymentMethod):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid payment method", nil)
		case errors.Is(err, commands.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errors.Is(err, commands.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Only pending reservations can be paid", nil)
		case errors.Is(err, commands.ErrReservationConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Reservation was modified concurrently", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPaymentView(view))
}

// @Summary List payments
// @Description List payments recorded against a reservation
// @Tags payments
// @Produce json
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Reservation ID"
// @Success 200 {array} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/payments [get]
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	customerID, reservationID, ok := h.identityAndID(c)
	if !ok {
		return
	}

	items, err := h.paymentQueries.ListByReservation(c.Request.Context(), customerID, reservationID)
	if err != nil {
		if errors.Is(err, queries.ErrViewNotFound) || isNotFoundRead(err) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentList(items))
}

func (h *PaymentHandler) identityAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return customerID, id, true
}
