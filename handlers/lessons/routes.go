package lessons

import (
	"ctfrange/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to the lesson clock and
// lesson templates
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	// Public clock status polled by every client
	r.GET("/lesson/status", GetLessonStatus)

	mentor := r.Group("/mentor")
	mentor.Use(middleware.AuthMiddleware(), middleware.MentorMiddleware())
	{
		mentor.GET("/lesson", GetLessonSettings)
		mentor.POST("/lesson/start", StartOrExtendLesson)
		mentor.POST("/lesson/reset", ResetLesson)
		mentor.POST("/system/reset", ResetPlatform)

		mentor.GET("/templates", ListTemplates)
		mentor.POST("/templates", CreateTemplate)
		mentor.PUT("/templates/:id", UpdateTemplate)
		mentor.DELETE("/templates/:id", DeleteTemplate)
		mentor.POST("/templates/:id/apply", ApplyTemplate)
	}
}
