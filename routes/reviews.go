package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consulting-platform-server/models"
	"consulting-platform-server/services"
)

// RegisterReviewRoutes registers review submission and consultant replies
func RegisterReviewRoutes(router *gin.RouterGroup) {
	router.POST("/bookings/:id/review", submitReview)
	router.POST("/reviews/:id/respond", respondToReview)
}

func submitReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.ReviewCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	review, err := services.NewReviewService().Submit(id, c.GetUint("user_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

func respondToReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Response string `json:"response" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	review, err := services.NewReviewService().Respond(id, c.GetUint("user_id"), req.Response)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}
