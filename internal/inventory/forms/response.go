package forms

import (
	"errors"
	"net/http"

	custom_error "github.com/cavijaykg-ops/site-inventory-wise/pkg/errors"

	"github.com/gin-gonic/gin"
)

// AbortWithError maps a flow error to a status and echoes the draft back so
// the caller can correct it and resubmit.
func AbortWithError(c *gin.Context, err error, draft any) {
	var (
		validation   *custom_error.ValidationError
		insufficient *custom_error.InsufficientStockError
		remote       *custom_error.RemoteError
	)

	switch {
	case errors.As(err, &validation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   validation.Title(),
			"details": validation.Error(),
			"missing": validation.Missing,
			"invalid": validation.Invalid,
			"draft":   draft,
		})
	case errors.As(err, &insufficient):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error":     insufficient.Title(),
			"details":   insufficient.Error(),
			"available": insufficient.Available,
			"unit":      insufficient.Unit,
			"draft":     draft,
		})
	case errors.As(err, &remote):
		status := http.StatusBadGateway
		if remote.IsConstraintViolation() {
			status = http.StatusConflict
		}
		c.AbortWithStatusJSON(status, gin.H{
			"error":   remote.Title(),
			"details": remote.Error(),
			"draft":   draft,
		})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"details": err.Error(),
			"draft":   draft,
		})
	}
}
