package users

import (
	"ctfrange/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to user accounts
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	profile := r.Group("/profile")
	profile.Use(middleware.AuthMiddleware())
	{
		profile.GET("", GetProfile)
		profile.PUT("", UpdateProfile)
	}

	mentor := r.Group("/mentor")
	mentor.Use(middleware.AuthMiddleware(), middleware.MentorMiddleware())
	{
		mentor.GET("/users", ListUsers)
		mentor.GET("/users/export", ExportUsersCSV)
	}
}
