package api

import (
	"context"
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

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
}

func NewReservationHandler(
	reservationCommands commands.ReservationCommands,
	reservationQueries queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
	}
}

// @Summary Create reservation
// @Description Book seats for a package or destination
// @Tags reservations
// @Accept json
// @Produce json
// @Param X-Customer-ID header string true "Customer ID"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	view, err := h.reservationCommands.Create(c.Request.Context(), customerID, req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
		case errors.Is(err, commands.ErrInsufficientInventory):
			httperr.AbortWithError(c, http.StatusConflict, err, "Not enough seats available", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description List the calling customer's reservations
// @Tags reservations
// @Produce json
// @Param X-Customer-ID header string true "Customer ID"
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 401 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) GetCustomerReservations(c *gin.Context) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingIdentity, "Internal server error", nil)
		return
	}

	items, err := h.reservationQueries.ListByCustomer(c.Request.Context(), customerID, 0)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationList(items))
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	customerID, id, ok := h.identityAndID(c)
	if !ok {
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), customerID, id)
	if err != nil {
		if errors.Is(err, queries.ErrViewNotFound) || isNotFoundRead(err) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Confirm reservation
// @Description Move a paid reservation to CONFIRMED
// @Tags reservations
// @Produce json
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/confirm [post]
func (h *ReservationHandler) ConfirmReservation(c *gin.Context) {
	h.runTransition(c, h.reservationCommands.Confirm)
}

// @Summary Complete reservation
// @Description Move a confirmed reservation to COMPLETED after the trip
// @Tags reservations
// @Produce json
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/complete [post]
func (h *ReservationHandler) CompleteReservation(c *gin.Context) {
	h.runTransition(c, h.reservationCommands.Complete)
}

// @Summary Cancel reservation
// @Description Cancel a reservation and compute the refund
// @Tags reservations
// @Produce json
// @Param X-Customer-ID header string true "Customer ID"
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.CancelReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	customerID, id, ok := h.identityAndID(c)
	if !ok {
		return
	}

	result, err := h.reservationCommands.Cancel(c.Request.Context(), customerID, id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errors.Is(err, commands.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Reservation cannot be cancelled in its current status", nil)
		case errors.Is(err, commands.ErrReservationConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Reservation was modified concurrently", nil)
		case errors.Is(err, commands.ErrCancellationRejected):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Cancellation rejected: notice period has passed for an unpaid reservation", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCancelResult(result))
}

func (h *ReservationHandler) runTransition(
	c *gin.Context,
	op func(ctx context.Context, customerID, id uuid.UUID) (*queries.ReservationView, error),
) {
	customerID, id, ok := h.identityAndID(c)
	if !ok {
		return
	}

	view, err := op(c.Request.Context(), customerID, id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errors.Is(err, commands.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Invalid status transition", nil)
		case errors.Is(err, commands.ErrReservationConflict):
			httperr.AbortWithError(c, http.StatusConflict, err, "Reservation was modified concurrently", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

func (h *ReservationHandler) identityAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
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
