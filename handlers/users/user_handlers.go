package users

import (
	"encoding/csv"
	"log"
	"net/http"
	"strconv"

	"ctfrange/database"
	"ctfrange/middleware"
	"ctfrange/models"
	"ctfrange/services"
	"ctfrange/utils/response"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the caller's account with score, solve count, and rank
// @Summary Get own profile
// @Tags Users
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} map[string]string
// @Router /profile [get]
// @Security Bearer
func GetProfile(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	stats, err := services.GetProfileStats(user)
	if err != nil {
		log.Printf("Failed to load profile stats for user %d: %v", user.ID, err)
		response.Error(c, http.StatusInternalServerError, ErrFailedFetch)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		User:       user,
		Score:      stats.Score,
		FlagsCount: stats.FlagsCount,
		Rank:       stats.Rank,
	})
}

// UpdateProfile edits the caller's avatar, bio, or country
// @Summary Update own profile
// @Tags Users
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400,401 {object} map[string]string
// @Router /profile [put]
// @Security Bearer
func UpdateProfile(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	updates := map[string]interface{}{}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Bio != nil {
		updates["bio"] = req.Bio
	}
	if req.Country != nil {
		updates["country"] = req.Country
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, ErrFailedUpdate)
			return
		}
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers returns every account with their solve counts (mentor only)
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Failure 401,403 {object} map[string]string
// @Router /mentor/users [get]
// @Security Bearer
func ListUsers(c *gin.Context) {
	var userList []models.User
	if err := database.DB.Preload("Groups").Order("id").Find(&userList).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetch)
		return
	}
	c.JSON(http.StatusOK, userList)
}

// ExportUsersCSV downloads every account with their standings (mentor only)
// @Summary Export users
// @Tags Users
// @Produce text/csv
// @Success 200 {file} binary
// @Failure 401,403 {object} map[string]string
// @Router /mentor/users/export [get]
// @Security Bearer
func ExportUsersCSV(c *gin.Context) {
	var userList []models.User
	if err := database.DB.Order("id").Find(&userList).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedExport)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="users.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")

	if _, err := c.Writer.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		log.Printf("Failed to write BOM: %v", err)
		return
	}

	w := csv.NewWriter(c.Writer)
	w.Comma = ';'
	if err := w.Write([]string{"ID", "Username", "Email", "Score", "Solves"}); err != nil {
		log.Printf("Failed to write CSV header: %v", err)
		return
	}

	for _, u := range userList {
		stats, err := services.GetProfileStats(u)
		if err != nil {
			log.Printf("Failed to load stats for user %d: %v", u.ID, err)
			continue
		}
		record := []string{
			strconv.FormatUint(uint64(u.ID), 10),
			u.Username,
			u.Email,
			strconv.Itoa(stats.Score),
			strconv.Itoa(stats.FlagsCount),
		}
		if err := w.Write(record); err != nil {
			log.Printf("Failed to write CSV row: %v", err)
			return
		}
	}
	w.Flush()
}
