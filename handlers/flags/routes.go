package flags

import (
	"ctfrange/config"
	"ctfrange/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to flag submissions
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	cooldown := middleware.NewSubmitCooldown(config.DefaultFlagRateLimitConfig)

	flags := r.Group("/")
	flags.Use(middleware.AuthMiddleware())
	{
		flags.POST("/flags/submit", middleware.SubmitCooldownMiddleware(cooldown), SubmitFlag)
		flags.GET("/challenges/:id/solves", GetChallengeSolves)
	}
}
