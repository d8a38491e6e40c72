package scoreboard

import (
	"ctfrange/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to standings
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	board := r.Group("/scoreboard")
	{
		board.GET("/feed", SolveFeedWS)
		board.GET("", middleware.AuthMiddleware(), GetLeaderboard)
		board.GET("/progression", middleware.AuthMiddleware(), GetProgression)
		board.GET("/completion", middleware.AuthMiddleware(), GetCompletion)
	}

	mentor := r.Group("/mentor")
	mentor.Use(middleware.AuthMiddleware(), middleware.MentorMiddleware())
	{
		mentor.GET("/dashboard", GetDashboard)
		mentor.GET("/scoreboard/export", ExportStandingsCSV)
	}
}
