//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"tour-booking/internal/handler/api"
	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/internal/usecase/queries"
	commonhttp "tour-booking/tests/common/httptest"
	queriesmock "tour-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CatalogHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	queries *queriesmock.MockCatalogQueries
	router  *gin.Engine
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerSuite))
}

func (s *CatalogHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctrl = gomock.NewController(s.T())
	s.queries = queriesmock.NewMockCatalogQueries(s.ctrl)

	h := api.NewCatalogHandler(s.queries)

	s.router = gin.New()
	s.router.GET("/api/policies", h.GetPolicies)
	s.router.GET("/api/products", h.GetProducts)
}

func (s *CatalogHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CatalogHandlerSuite) TestGetPolicies() {
	s.Run("listed", func() {
		s.queries.EXPECT().
			ListPolicies(gomock.Any()).
			Return([]*queries.PolicyView{
				{ID: uuid.New(), Name: "Flexible", NoticeDays: 7, RefundPercentage: 100},
				{ID: uuid.New(), Name: "Strict", NoticeDays: 30, RefundPercentage: 50},
			}, nil)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/api/policies", nil, "")

		var resp []*resdto.PolicyResponse
		commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Len(resp, 2)
		s.Equal("Flexible", resp[0].Name)
		s.Equal(30, resp[1].NoticeDays)
	})

	s.Run("storage failure", func() {
		s.queries.EXPECT().
			ListPolicies(gomock.Any()).
			Return(nil, errors.New("connection reset"))

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/api/policies", nil, "")
		commonhttp.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "")
	})
}

func (s *CatalogHandlerSuite) TestGetProducts() {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	s.queries.EXPECT().
		ListProducts(gomock.Any()).
		Return([]*queries.ProductListItem{
			{ID: uuid.New(), Kind: "PACKAGE", Name: "Andes Trek", UnitPrice: 150000, AvailableSeats: 10, PolicyID: uuid.New(), StartDate: &start},
			{ID: uuid.New(), Kind: "DESTINATION", Name: "Patagonia", UnitPrice: 80000, AvailableSeats: 5, PolicyID: uuid.New()},
		}, nil)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/api/products", nil, "")

	var resp []*resdto.ProductResponse
	commonhttp.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Len(resp, 2)
	s.Equal("PACKAGE", resp[0].Kind)
	s.NotNil(resp[0].StartDate)
	s.Nil(resp[1].StartDate)
}
