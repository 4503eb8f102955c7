package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consulting-platform-server/models"
	"consulting-platform-server/services"
	ws "consulting-platform-server/websocket"
)

// RegisterMessageRoutes registers booking thread endpoints plus the
// realtime push socket
func RegisterMessageRoutes(router *gin.RouterGroup) {
	bookings := router.Group("/bookings/:id")
	{
		bookings.POST("/messages", postMessage)
		bookings.GET("/messages", getMessages)
		bookings.GET("/messages/unread-count", getUnreadCount)
	}

	router.PUT("/messages/:id/read", markMessageRead)
}

// RegisterWebSocketRoutes registers the push notification socket.
// Auth comes from a token query parameter, applied by the caller.
func RegisterWebSocketRoutes(router *gin.RouterGroup) {
	router.GET("/ws", func(c *gin.Context) {
		ws.ServeWebSocket(ws.DefaultHub, c.Writer, c.Request, c.GetUint("user_id"))
	})
}

func postMessage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.MessageCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	message, err := services.NewMessageService().Post(id, c.GetUint("user_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

func getMessages(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	messages, err := services.NewMessageService().List(id, c.GetUint("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func getUnreadCount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	count, err := services.NewMessageService().UnreadCount(id, c.GetUint("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func markMessageRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.NewMessageService().MarkRead(id, c.GetUint("user_id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}
