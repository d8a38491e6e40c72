package messages

import (
	"ctfrange/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to ephemeral messaging
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/messages/inbox", middleware.AuthMiddleware(), GetInbox)

	mentor := r.Group("/mentor")
	mentor.Use(middleware.AuthMiddleware(), middleware.MentorMiddleware())
	{
		mentor.POST("/messages/broadcast", Broadcast)
		mentor.POST("/messages/personal", SendPersonal)
	}
}
