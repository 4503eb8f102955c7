package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consulting-platform-server/services"
)

// RegisterNotificationRoutes registers in-app notification endpoints
func RegisterNotificationRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	{
		notifications.GET("", getNotifications)
		notifications.PUT("/:id/read", markNotificationRead)
		notifications.PUT("/read-all", markAllNotificationsRead)
	}
}

func getNotifications(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	notifications, err := services.NewNotificationService().ListForUser(c.GetUint("user_id"), unreadOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func markNotificationRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.NewNotificationService().MarkRead(id, c.GetUint("user_id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}

func markAllNotificationsRead(c *gin.Context) {
	if err := services.NewNotificationService().MarkAllRead(c.GetUint("user_id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
