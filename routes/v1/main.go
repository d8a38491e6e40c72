package v1

import (
	"ctfrange/handlers/auth"
	"ctfrange/handlers/challenges"
	"ctfrange/handlers/flags"
	"ctfrange/handlers/lessons"
	"ctfrange/handlers/messages"
	"ctfrange/handlers/scoreboard"
	"ctfrange/handlers/users"
	"ctfrange/middleware"

	"github.com/gin-gonic/gin"
)

// Register the endpoints for the v1 API
func Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(600, 100) // 10 requests per second, 100 burst
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)
	auth.RegisterRoutes(v1)
	users.RegisterRoutes(v1)
	challenges.RegisterRoutes(v1)
	flags.RegisterRoutes(v1)
	scoreboard.RegisterRoutes(v1)
	lessons.RegisterRoutes(v1)
	messages.RegisterRoutes(v1)

	// Register metrics endpoint
	RegisterMetricsRoutes(v1)
}
