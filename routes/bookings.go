package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consulting-platform-server/models"
	"consulting-platform-server/services"
)

// RegisterBookingRoutes registers booking lifecycle endpoints
func RegisterBookingRoutes(router *gin.RouterGroup) {
	bookings := router.Group("/bookings")
	{
		bookings.POST("", createBooking)
		bookings.GET("", getMyBookings)
		bookings.GET("/:id", getBooking)
		bookings.POST("/:id/transition", transitionBooking)
		bookings.POST("/:id/cancel", cancelBooking)
		bookings.PUT("/:id/notes", updateConsultantNotes)
	}

	router.POST("/uploads", uploadAttachment)
}

func createBooking(c *gin.Context) {
	var req models.BookingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	booking, err := services.NewBookingService().CreateBooking(c.GetUint("user_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

func getMyBookings(c *gin.Context) {
	bookings, err := services.NewBookingService().ListForClient(c.GetUint("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func getBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewBookingService()
	booking, err := svc.GetBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Only the two parties and admins may read a booking.
	role := svc.RoleOf(c.GetUint("user_id"), booking)
	if role == services.PartyNone && c.GetString("role") != string(models.RoleAdmin) {
		respondServiceError(c, services.ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func transitionBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.BookingTransition
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	isAdmin := c.GetString("role") == string(models.RoleAdmin)
	booking, earning, err := services.NewBookingService().Transition(
		id, c.GetUint("user_id"), isAdmin, req.Status, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{"booking": booking}
	if earning != nil {
		resp["earning"] = earning
	}
	c.JSON(http.StatusOK, resp)
}

func cancelBooking(c *gin.Context) {
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
			"message": "A cancellation reason is required",
		})
		return
	}

	isAdmin := c.GetString("role") == string(models.RoleAdmin)
	booking, _, err := services.NewBookingService().Transition(
		id, c.GetUint("user_id"), isAdmin, models.BookingStatusCancelled, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func updateConsultantNotes(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Notes string `json:"notes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if err := services.NewBookingService().UpdateConsultantNotes(id, c.GetUint("user_id"), req.Notes); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notes updated"})
}

// uploadAttachment stores a file and returns its URL. Clients attach the
// URL to a booking or message afterwards.
func uploadAttachment(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid form data",
			"message": "A file field is required",
		})
		return
	}

	storage, err := services.NewStorageService()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Storage unavailable",
			"message": "File storage is not configured",
		})
		return
	}

	url, err := storage.Upload(c.Request.Context(), file, "attachments")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Upload failed",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
