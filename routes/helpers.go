package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"consulting-platform-server/services"
)

// parseIDParam parses a numeric path parameter, writing a 400 on failure
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid " + name,
			"message": name + " must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps service errors to HTTP statuses
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": err.Error(),
		})
	case services.IsInvalidTransition(err),
		errors.Is(err, services.ErrAlreadyReviewed),
		errors.Is(err, services.ErrNotCompleted),
		errors.Is(err, services.ErrConsultantUnavailable),
		errors.Is(err, services.ErrAlreadyApplied):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Conflict",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrReasonRequired),
		errors.Is(err, services.ErrPaymentAmountMismatch):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrPaymentNotPaid):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":   "Payment required",
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Something went wrong. Please try again.",
		})
	}
}
