//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"tour-booking/internal/handler/api"
	reqdto "tour-booking/internal/handler/dto/request"
	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/usecase/commands"
	"tour-booking/internal/usecase/queries"
	commonhttp "tour-booking/tests/common/httptest"
	"tour-booking/tests/common/testutil"
	commandsmock "tour-booking/tests/mock/commands"
	queriesmock "tour-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	commands *commandsmock.MockPaymentCommands
	queries  *queriesmock.MockPaymentQueries
	router   *gin.Engine

	customerID    uuid.UUID
	reservationID uuid.UUID
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerSuite))
}

func (s *PaymentHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.commands = commandsmock.NewMockPaymentCommands(s.ctrl)
	s.queries = queriesmock.NewMockPaymentQueries(s.ctrl)
	s.customerID = uuid.New()
	s.reservationID = uuid.New()

	h := api.NewPaymentHandler(s.commands, s.queries)

	s.router = gin.New()
	group := s.router.Group("/api/reservations")
	group.Use(middleware.RequireCustomer())
	group.POST("/:id/payments", h.RecordPayment)
	group.GET("/:id/payments", h.GetPayments)
}

func (s *PaymentHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *PaymentHandlerSuite) paymentsPath() string {
	return "/api/reservations/" + s.reservationID.String() + "/payments"
}

func (s *PaymentHandlerSuite) TestRecordPayment() {
	s.Run("recorded", func() {
		view := &queries.PaymentView{
			ID:            uuid.New(),
			ReservationID: s.reservationID,
			Amount:        300000,
			Method:        "CARD",
			Status:        "COMPLETED",
			PaidAt:        time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		}
		s.commands.EXPECT().
			RecordPayment(gomock.Any(), s.customerID, s.reservationID, reqdto.RecordPaymentRequest{Method: "CARD"}).
			Return(view, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, s.paymentsPath(),
			reqdto.RecordPaymentRequest{Method: "CARD"}, s.customerID.String())

		var resp resdto.PaymentResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal(int64(300000), resp.Amount)
		s.Equal("COMPLETED", resp.Status)
	})

	s.Run("binding failures", func() {
		bindingCases := []struct {
			name string
			body map[string]any
		}{
			{"method missing", testutil.DtoMap(s.T(),
				reqdto.RecordPaymentRequest{Method: "CARD"},
				testutil.Field("method", nil))},
			{"method unsupported", testutil.DtoMap(s.T(),
				reqdto.RecordPaymentRequest{Method: "CARD"},
				testutil.Field("method", "CRYPTO"))},
		}
		for _, c := range bindingCases {
			s.Run(c.name, func() {
				w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, s.paymentsPath(),
					c.body, s.customerID.String())
				commonhttp.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error mapping", func() {
		errorCases := []struct {
			name       string
			err        error
			wantStatus int
			wantMsg    string
		}{
			{"unsupported method", commands.ErrInvalidPaymentMethod, http.StatusBadRequest, "Invalid payment method"},
			{"not found", commands.ErrReservationNotFound, http.StatusNotFound, "Reservation not found"},
			{"already paid", commands.ErrInvalidTransition, http.StatusConflict, "Only pending reservations can be paid"},
			{"lost the race", commands.ErrReservationConflict, http.StatusConflict, ""},
			{"storage failure", errors.New("connection reset"), http.StatusInternalServerError, ""},
		}
		for _, c := range errorCases {
			s.Run(c.name, func() {
				s.commands.EXPECT().
					RecordPayment(gomock.Any(), s.customerID, s.reservationID, gomock.Any()).
					Return(nil, c.err)

				w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, s.paymentsPath(),
					reqdto.RecordPaymentRequest{Method: "CARD"}, s.customerID.String())
				commonhttp.AssertErrorResponse(s.T(), w, c.wantStatus, c.wantMsg)
			})
		}
	})

	s.Run("missing identity header", func() {
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, s.paymentsPath(),
			reqdto.RecordPaymentRequest{Method: "CARD"}, "")
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Customer identity required")
	})
}

func (s *PaymentHandlerSuite) TestGetPayments() {
	s.Run("listed", func() {
		s.queries.EXPECT().
			ListByReservation(gomock.Any(), s.customerID, s.reservationID).
			Return([]*queries.PaymentView{
				{ID: uuid.New(), ReservationID: s.reservationID, Amount: 300000, Method: "CASH", Status: "COMPLETED"},
			}, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, s.paymentsPath(), nil, s.customerID.String())

		var resp []*resdto.PaymentResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp, 1)
		s.Equal("CASH", resp[0].Method)
	})

	s.Run("foreign reservation reads as missing", func() {
		s.queries.EXPECT().
			ListByReservation(gomock.Any(), s.customerID, s.reservationID).
			Return(nil, queries.ErrViewNotFound)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, s.paymentsPath(), nil, s.customerID.String())
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})

	s.Run("malformed id", func() {
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/reservations/not-a-uuid/payments", nil, s.customerID.String())
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid reservation ID format")
	})
}
