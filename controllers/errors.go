package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenbasket/produce-orders/services"
	"github.com/greenbasket/produce-orders/utils"
)

var (
	errInternal     = errors.New("internal server error")
	errInvalidLimit = errors.New("limit must be a positive integer")
)

// respondServiceError maps service errors to HTTP responses. Validation
// failures carry their reason; storage failures are logged and surfaced as a
// generic 500 without internal detail.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrMissingField),
		errors.Is(err, services.ErrInvalidField),
		errors.Is(err, services.ErrInvalidPrice),
		errors.Is(err, services.ErrInvalidTotal),
		errors.Is(err, services.ErrDuplicateID),
		errors.Is(err, services.ErrUnknownItem),
		errors.Is(err, services.ErrPriceMismatch):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.ErrorLogger.Printf("request failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
	}
}
