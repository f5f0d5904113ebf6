package middleware

import (
	"net/http"

	"tour-booking/internal/handler/httperr"
	"tour-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Authentication happens at the API gateway; by the time a request gets
// here the customer identity is carried in a trusted header.
const (
	customerIDHeader = "X-Customer-ID"
	ctxCustomerIDKey = "customer_id"
)

var errNoCustomerHeader = errs.New("missing " + customerIDHeader + " header")

func RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(customerIDHeader)
		if raw == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errNoCustomerHeader, "Customer identity required", nil)
			return
		}

		customerID, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid customer identity", nil)
			return
		}

		c.Set(ctxCustomerIDKey, customerID)
		c.Next()
	}
}

func GetCustomerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxCustomerIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
