package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consulting-platform-server/models"
	"consulting-platform-server/services"
)

// RegisterConsultantRoutes registers the public consultant directory and
// the consultant self-service endpoints
func RegisterConsultantRoutes(public, protected *gin.RouterGroup) {
	public.GET("/consultants", getConsultants)
	public.GET("/consultants/:id/reviews", getConsultantReviews)

	consultant := protected.Group("/consultant")
	{
		consultant.POST("/register", registerConsultant)
		consultant.GET("/profile", getMyConsultantProfile)
		consultant.PUT("/availability", setAvailability)
		consultant.POST("/documents", addConsultantDocument)
		consultant.GET("/earnings", getMyEarnings)
		consultant.GET("/bookings", getConsultantBookings)
		consultant.POST("/ai/suggest-reply", suggestReply)
	}
}

func getConsultants(c *gin.Context) {
	consultants, err := services.NewConsultantService().ListApproved(c.Query("specialization"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]models.ConsultantResponse, 0, len(consultants))
	for i := range consultants {
		responses = append(responses, consultants[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"consultants": responses})
}

func getConsultantReviews(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := services.NewReviewService().ListForConsultant(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func registerConsultant(c *gin.Context) {
	var req models.ConsultantRegister
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	consultant, err := services.NewConsultantService().Register(c.GetUint("user_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Application submitted. You will be notified once it is reviewed.",
		"consultant": consultant.ToResponse(),
	})
}

func getMyConsultantProfile(c *gin.Context) {
	consultant, err := services.NewConsultantService().GetByUserID(c.GetUint("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"consultant": consultant})
}

func setAvailability(c *gin.Context) {
	var req struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if err := services.NewConsultantService().SetAvailability(c.GetUint("user_id"), *req.IsAvailable); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Availability updated", "is_available": *req.IsAvailable})
}

func addConsultantDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid form data",
			"message": "A file field is required",
		})
		return
	}
	docType := c.PostForm("document_type")
	if docType == "" {
		docType = "other"
	}

	storage, err := services.NewStorageService()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Storage unavailable",
			"message": "Document storage is not configured",
		})
		return
	}

	url, err := storage.Upload(c.Request.Context(), file, "consultant-documents")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Upload failed",
			"message": err.Error(),
		})
		return
	}

	doc, err := services.NewConsultantService().AddDocument(
		c.GetUint("user_id"), docType, file.Filename, url,
		file.Header.Get("Content-Type"), file.Size)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": doc})
}

func getMyEarnings(c *gin.Context) {
	consultant, err := services.NewConsultantService().GetByUserID(c.GetUint("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	earnings, err := services.NewEarningsService().ListForConsultant(consultant.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"earnings":       earnings,
		"total_earnings": consultant.TotalEarnings,
	})
}

func getConsultantBookings(c *gin.Context) {
	consultant, err := services.NewConsultantService().GetByUserID(c.GetUint("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	bookings, err := services.NewBookingService().ListForConsultant(consultant.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func suggestReply(c *gin.Context) {
	var req struct {
		BookingID uint   `json:"booking_id" binding:"required"`
		Language  string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	suggestion, err := services.NewAIService().SuggestReply(req.BookingID, c.GetUint("user_id"), req.Language)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}
