package challenges

import (
	"ctfrange/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to challenges and categories
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	participant := r.Group("/")
	participant.Use(middleware.AuthMiddleware())
	{
		participant.GET("/challenges", ListChallenges)
		participant.GET("/categories", ListCategories)
	}

	mentor := r.Group("/mentor")
	mentor.Use(middleware.AuthMiddleware(), middleware.MentorMiddleware())
	{
		mentor.GET("/challenges", ListChallengesMentor)
		mentor.POST("/challenges", CreateChallenge)
		mentor.PUT("/challenges/:id", UpdateChallenge)
		mentor.DELETE("/challenges/:id", DeleteChallenge)
		mentor.PUT("/challenges/:id/toggle", ToggleChallenge)
		mentor.POST("/challenges/bulk", BulkAction)
		mentor.POST("/challenges/disable_all", DisableAllChallenges)
		mentor.GET("/challenges/export", ExportChallengesExcel)

		mentor.POST("/categories", CreateCategory)
		mentor.PUT("/categories/:id", UpdateCategory)
		mentor.DELETE("/categories/:id", DeleteCategory)
	}
}
