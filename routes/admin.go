package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"consulting-platform-server/models"
	"consulting-platform-server/services"
)

// RegisterAdminRoutes registers the admin surface: consultant approval,
// payout processing, refunds and the SLA report
func RegisterAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		admin.GET("/consultants/pending", getPendingConsultants)
		admin.POST("/consultants/:id/approve", approveConsultant)
		admin.POST("/consultants/:id/reject", rejectConsultant)
		admin.POST("/consultants/:id/suspend", suspendConsultant)

		admin.GET("/earnings", getEarningsByPayoutStatus)
		admin.PUT("/earnings/:id/payout", updatePayoutStatus)

		admin.POST("/bookings/:id/refund", markBookingRefunded)
		admin.GET("/reports/sla-breaches", getSLABreaches)
	}
}

func getPendingConsultants(c *gin.Context) {
	consultants, err := services.NewConsultantService().ListPending()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"consultants": consultants})
}

func approveConsultant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		CommissionRate *int `json:"commission_rate" binding:"omitempty,min=0,max=100"`
	}
	_ = c.ShouldBindJSON(&req)

	consultant, err := services.NewConsultantService().Approve(id, c.GetUint("user_id"), req.CommissionRate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"consultant": consultant})
}

func rejectConsultant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": "A rejection reason is required",
		})
		return
	}

	consultant, err := services.NewConsultantService().Reject(id, c.GetUint("user_id"), req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"consultant": consultant})
}

func suspendConsultant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	consultant, err := services.NewConsultantService().Suspend(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"consultant": consultant})
}

func getEarningsByPayoutStatus(c *gin.Context) {
	status := models.PayoutStatus(c.DefaultQuery("status", string(models.PayoutStatusPending)))

	earnings, err := services.NewEarningsService().ListByPayoutStatus(status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"earnings": earnings})
}

func updatePayoutStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status        models.PayoutStatus `json:"status" binding:"required"`
		Method        string              `json:"method"`
		TransactionID string              `json:"transaction_id"`
		Notes         string              `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	earning, err := services.NewEarningsService().UpdatePayoutStatus(id, req.Status, req.Method, req.TransactionID, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"earning": earning})
}

func markBookingRefunded(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := services.NewPaymentService().MarkRefunded(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func getSLABreaches(c *gin.Context) {
	bookings, err := services.NewBookingService().ListPastSLA(time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(bookings),
		"bookings": bookings,
	})
}
