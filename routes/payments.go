package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consulting-platform-server/services"
)

// RegisterPaymentRoutes registers gateway payment confirmation
func RegisterPaymentRoutes(router *gin.RouterGroup) {
	router.POST("/bookings/:id/payment/confirm", confirmPayment)
}

func confirmPayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		PaymentID string `json:"payment_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	booking, err := services.NewPaymentService().ConfirmBookingPayment(id, c.GetUint("user_id"), req.PaymentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
