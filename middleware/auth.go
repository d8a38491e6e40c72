package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"ctfrange/database"
	"ctfrange/models"
	"ctfrange/utils"
	"ctfrange/utils/response"

	"github.com/gin-gonic/gin"
)

const userContextKey = "currentUser"

// AuthMiddleware validates the bearer token and loads the authenticated user
// (with their groups) into the request context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header missing")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, http.StatusUnauthorized, "Invalid Authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.Preload("Groups").First(&user, "id = ?", claims.UserID).Error; err != nil {
			response.Error(c, http.StatusUnauthorized, "User no longer exists")
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// MentorMiddleware rejects requests from users without mentor access.
// Must run after AuthMiddleware.
func MentorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromRequest(c)
		if err != nil {
			c.Abort()
			return
		}
		if !user.IsMentor() {
			response.Error(c, http.StatusForbidden, "Mentor access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserFromRequest returns the authenticated user stored by AuthMiddleware.
// When no user is present the 401 response is already written, callers only
// need to return.
func GetUserFromRequest(c *gin.Context) (models.User, error) {
	value, exists := c.Get(userContextKey)
	if !exists {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return models.User{}, fmt.Errorf("no authenticated user in context")
	}
	user, ok := value.(models.User)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return models.User{}, fmt.Errorf("invalid user in context")
	}
	return user, nil
}
