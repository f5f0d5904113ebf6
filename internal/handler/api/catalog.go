package api

import (
	"net/http"

	resdto "tour-booking/internal/handler/dto/response"
	"tour-booking/internal/handler/httperr"
	"tour-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogQueries queries.CatalogQueries
}

func NewCatalogHandler(catalogQueries queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{catalogQueries: catalogQueries}
}

// @Summary List cancellation policies
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.PolicyResponse
// @Failure 500 {object} httperr.Response
// @Router /policies [get]
func (h *CatalogHandler) GetPolicies(c *gin.Context) {
	items, err := h.catalogQueries.ListPolicies(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPolicyList(items))
}

// @Summary List products
// @Description List bookable packages and destinations
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.ProductResponse
// @Failure 500 {object} httperr.Response
// @Router /products [get]
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	items, err := h.catalogQueries.ListProducts(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductList(items))
}
