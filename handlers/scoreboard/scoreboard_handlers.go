package scoreboard

import (
	"log"
	"net/http"

	"ctfrange/database"
	"ctfrange/middleware"
	"ctfrange/models"
	"ctfrange/services"
	"ctfrange/utils/response"

	"github.com/gin-gonic/gin"
)

const progressionTopN = 10

// GetLeaderboard returns the ranked public standings
// @Summary Public leaderboard
// @Description Ranked standings of all scoring participants
// @Tags Scoreboard
// @Produce json
// @Success 200 {array} LeaderboardEntry
// @Failure 401 {object} map[string]string
// @Router /scoreboard [get]
// @Security Bearer
func GetLeaderboard(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	ranked, err := services.GetLeaderboard(c.Request.Context())
	if err != nil {
		log.Printf("Failed to build leaderboard: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchScores)
		return
	}

	entries := make([]LeaderboardEntry, 0, len(ranked))
	for _, e := range ranked {
		entries = append(entries, LeaderboardEntry{
			Rank:   e.Rank,
			User:   e.Username,
			Points: e.TotalPoints,
			Solved: e.SolvedCount,
			IsMe:   e.UserID == user.ID,
			Avatar: e.AvatarURL,
		})
	}
	c.JSON(http.StatusOK, entries)
}

// GetProgression returns score-over-time step series for the chart
// @Summary Score progression
// @Description Cumulative score lines for the top users plus the caller
// @Tags Scoreboard
// @Produce json
// @Success 200 {array} services.ProgressionSeries
// @Failure 401 {object} map[string]string
// @Router /scoreboard/progression [get]
// @Security Bearer
func GetProgression(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	series, err := services.GetProgression(progressionTopN, user)
	if err != nil {
		log.Printf("Failed to build progression: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchScores)
		return
	}
	c.JSON(http.StatusOK, series)
}

// GetCompletion returns the caller's completion percentage against the
// currently active catalog
// @Summary Completion percentage
// @Tags Scoreboard
// @Produce json
// @Success 200 {object} CompletionResponse
// @Failure 401 {object} map[string]string
// @Router /scoreboard/completion [get]
// @Security Bearer
func GetCompletion(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	stats, err := services.GetProfileStats(user)
	if err != nil {
		log.Printf("Failed to load profile stats: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchScores)
		return
	}

	maxPossible, err := services.MaxPossiblePoints()
	if err != nil {
		log.Printf("Failed to sum active points: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchScores)
		return
	}

	c.JSON(http.StatusOK, CompletionResponse{
		TotalPoints:       stats.Score,
		MaxPossiblePoints: maxPossible,
		Percentage:        services.CompletionPercentage(stats.Score, maxPossible),
	})
}

// GetDashboard returns the mentor dashboard totals and recent activity
// @Summary Mentor dashboard
// @Tags Scoreboard
// @Produce json
// @Success 200 {object} DashboardStats
// @Failure 401,403 {object} map[string]string
// @Router /mentor/dashboard [get]
// @Security Bearer
func GetDashboard(c *gin.Context) {
	var stats DashboardStats
	if err := database.DB.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		log.Printf("Failed to count users: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchScores)
		return
	}
	if err := database.DB.Model(&models.Challenge{}).Count(&stats.TotalChallenges).Error; err != nil {
		log.Printf("Failed to count challenges: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchScores)
		return
	}
	if err := database.DB.Model(&models.Solve{}).Count(&stats.TotalSolves).Error; err != nil {
		log.Printf("Failed to count solves: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchScores)
		return
	}

	var recent []models.Solve
	if err := database.DB.Preload("User").Preload("Challenge").
		Order("date desc").Limit(10).Find(&recent).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchScores)
		return
	}
	for _, s := range recent {
		row := RecentSolve{Date: s.Date.Format("2006-01-02 15:04")}
		if s.User != nil {
			row.User = s.User.Username
		}
		if s.Challenge != nil {
			row.Challenge = s.Challenge.Title
			row.Points = s.Challenge.Points
		}
		stats.RecentSolves = append(stats.RecentSolves, row)
	}

	c.JSON(http.StatusOK, stats)
}
