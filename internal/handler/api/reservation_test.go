//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"tour-booking/internal/handler/api"
	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/internal/handler/middleware"
	"tour-booking/internal/usecase/commands"
	"tour-booking/internal/usecase/queries"
	"tour-booking/tests/common/builder"
	commonhttp "tour-booking/tests/common/httptest"
	"tour-booking/tests/common/testutil"
	commandsmock "tour-booking/tests/mock/commands"
	queriesmock "tour-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	commands *commandsmock.MockReservationCommands
	queries  *queriesmock.MockReservationQueries
	router   *gin.Engine

	customerID uuid.UUID
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerSuite))
}

func (s *ReservationHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.commands = commandsmock.NewMockReservationCommands(s.ctrl)
	s.queries = queriesmock.NewMockReservationQueries(s.ctrl)
	s.customerID = uuid.New()

	h := api.NewReservationHandler(s.commands, s.queries)

	s.router = gin.New()
	group := s.router.Group("/api/reservations")
	group.Use(middleware.RequireCustomer())
	group.POST("", h.CreateReservation)
	group.GET("", h.GetCustomerReservations)
	group.GET("/:id", h.GetReservation)
	group.POST("/:id/confirm", h.ConfirmReservation)
	group.POST("/:id/complete", h.CompleteReservation)
	group.POST("/:id/cancel", h.CancelReservation)
}

func (s *ReservationHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ReservationHandlerSuite) TestCreateReservation() {
	s.Run("created", func() {
		b := builder.NewReservationBuilder().WithCustomerID(s.customerID)
		view := b.BuildView()
		s.commands.EXPECT().
			Create(gomock.Any(), s.customerID, gomock.Any()).
			Return(view, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/api/reservations",
			b.BuildCreateRequestDTO(), s.customerID.String())

		var resp resdto.ReservationResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal(view.ProductName, resp.ProductName)
		s.Equal(view.TotalAmount, resp.TotalAmount)
		s.Equal("PENDING", resp.Status)
	})

	s.Run("missing identity header", func() {
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/api/reservations",
			builder.NewReservationBuilder().BuildCreateRequestDTO(), "")
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Customer identity required")
	})

	s.Run("malformed identity header", func() {
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/api/reservations",
			builder.NewReservationBuilder().BuildCreateRequestDTO(), "not-a-uuid")
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid customer identity")
	})

	s.Run("binding failures", func() {
		bindingCases := []struct {
			name string
			body map[string]any
		}{
			{"person count missing", testutil.DtoMap(s.T(),
				builder.NewReservationBuilder().BuildCreateRequestDTO(),
				testutil.Field("person_count", nil))},
			{"person count zero", testutil.DtoMap(s.T(),
				builder.NewReservationBuilder().BuildCreateRequestDTO(),
				testutil.Field("person_count", 0))},
			{"person count not a number", testutil.DtoMap(s.T(),
				builder.NewReservationBuilder().BuildCreateRequestDTO(),
				testutil.Field("person_count", "three"))},
		}
		for _, c := range bindingCases {
			s.Run(c.name, func() {
				w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/api/reservations",
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
		}{
			{"unknown product", commands.ErrProductNotFound, http.StatusNotFound},
			{"sold out", commands.ErrInsufficientInventory, http.StatusConflict},
			{"domain validation", commands.ErrDomainValidation, http.StatusUnprocessableEntity},
			{"storage failure", errors.New("connection reset"), http.StatusInternalServerError},
		}
		for _, c := range errorCases {
			s.Run(c.name, func() {
				s.commands.EXPECT().
					Create(gomock.Any(), s.customerID, gomock.Any()).
					Return(nil, c.err)

				w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost, "/api/reservations",
					builder.NewReservationBuilder().BuildCreateRequestDTO(), s.customerID.String())
				commonhttp.AssertErrorResponse(s.T(), w, c.wantStatus, "")
			})
		}
	})
}

func (s *ReservationHandlerSuite) TestGetReservation() {
	s.Run("found", func() {
		view := builder.NewReservationBuilder().WithCustomerID(s.customerID).BuildView()
		s.queries.EXPECT().
			GetByID(gomock.Any(), s.customerID, view.ID).
			Return(view, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/reservations/"+view.ID.String(), nil, s.customerID.String())

		var resp resdto.ReservationResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
		s.Equal(view.CustomerID, resp.CustomerID)
	})

	s.Run("not found", func() {
		id := uuid.New()
		s.queries.EXPECT().
			GetByID(gomock.Any(), s.customerID, id).
			Return(nil, queries.ErrViewNotFound)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/reservations/"+id.String(), nil, s.customerID.String())
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})

	s.Run("malformed id", func() {
		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet,
			"/api/reservations/not-a-uuid", nil, s.customerID.String())
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid reservation ID format")
	})
}

func (s *ReservationHandlerSuite) TestListReservations() {
	s.queries.EXPECT().
		ListByCustomer(gomock.Any(), s.customerID, 0).
		Return([]*queries.ReservationListItem{
			{ID: uuid.New(), ProductName: "Andes Trek", Status: "PENDING", PersonCount: 2, TotalAmount: 300000},
		}, nil)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/api/reservations", nil, s.customerID.String())

	var resp []*resdto.ReservationListResponse
	commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Len(resp, 1)
	s.Equal("Andes Trek", resp[0].ProductName)
}

func (s *ReservationHandlerSuite) TestConfirmReservation() {
	id := uuid.New()

	s.Run("confirmed", func() {
		view := builder.NewReservationBuilder().WithCustomerID(s.customerID).BuildView()
		view.Status = "CONFIRMED"
		s.commands.EXPECT().
			Confirm(gomock.Any(), s.customerID, id).
			Return(view, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost,
			"/api/reservations/"+id.String()+"/confirm", nil, s.customerID.String())

		var resp resdto.ReservationResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("CONFIRMED", resp.Status)
	})

	s.Run("error mapping", func() {
		errorCases := []struct {
			name       string
			err        error
			wantStatus int
		}{
			{"not found", commands.ErrReservationNotFound, http.StatusNotFound},
			{"not paid yet", commands.ErrInvalidTransition, http.StatusConflict},
			{"lost the race", commands.ErrReservationConflict, http.StatusConflict},
			{"storage failure", errors.New("connection reset"), http.StatusInternalServerError},
		}
		for _, c := range errorCases {
			s.Run(c.name, func() {
				s.commands.EXPECT().
					Confirm(gomock.Any(), s.customerID, id).
					Return(nil, c.err)

				w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost,
					"/api/reservations/"+id.String()+"/confirm", nil, s.customerID.String())
				commonhttp.AssertErrorResponse(s.T(), w, c.wantStatus, "")
			})
		}
	})
}

func (s *ReservationHandlerSuite) TestCompleteReservation() {
	id := uuid.New()
	view := builder.NewReservationBuilder().WithCustomerID(s.customerID).BuildView()
	view.Status = "COMPLETED"
	s.commands.EXPECT().
		Complete(gomock.Any(), s.customerID, id).
		Return(view, nil)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost,
		"/api/reservations/"+id.String()+"/complete", nil, s.customerID.String())

	var resp resdto.ReservationResponse
	commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Equal("COMPLETED", resp.Status)
}

func (s *ReservationHandlerSuite) TestCancelReservation() {
	id := uuid.New()

	s.Run("cancelled with refund", func() {
		view := builder.NewReservationBuilder().WithCustomerID(s.customerID).BuildView()
		view.Status = "CANCELLED"
		result := &commands.CancelReservationResult{Reservation: view}
		result.Refund.Refundable = true
		result.Refund.RefundPercentage = 100
		result.Refund.RefundAmount = view.TotalAmount
		result.Refund.Reason = "100% refund"

		s.commands.EXPECT().
			Cancel(gomock.Any(), s.customerID, id).
			Return(result, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost,
			"/api/reservations/"+id.String()+"/cancel", nil, s.customerID.String())

		var resp resdto.CancelReservationResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("CANCELLED", resp.Reservation.Status)
		s.Equal(100, resp.RefundPercentage)
		s.Equal(view.TotalAmount, resp.RefundAmount)
		s.NotEmpty(resp.Reason)
	})

	s.Run("error mapping", func() {
		errorCases := []struct {
			name       string
			err        error
			wantStatus int
		}{
			{"not found", commands.ErrReservationNotFound, http.StatusNotFound},
			{"already terminal", commands.ErrInvalidTransition, http.StatusConflict},
			{"lost the race", commands.ErrReservationConflict, http.StatusConflict},
			{"notice period passed", commands.ErrCancellationRejected, http.StatusUnprocessableEntity},
			{"storage failure", errors.New("connection reset"), http.StatusInternalServerError},
		}
		for _, c := range errorCases {
			s.Run(c.name, func() {
				s.commands.EXPECT().
					Cancel(gomock.Any(), s.customerID, id).
					Return(nil, c.err)

				w := commonhttp.PerformRequest(s.T(), s.router, http.MethodPost,
					"/api/reservations/"+id.String()+"/cancel", nil, s.customerID.String())
				commonhttp.AssertErrorResponse(s.T(), w, c.wantStatus, "")
			})
		}
	})
}
