package flags

import (
	"errors"
	"log"
	"net/http"

	"ctfrange/database"
	"ctfrange/middleware"
	"ctfrange/models"
	"ctfrange/services"
	"ctfrange/utils/response"

	"github.com/gin-gonic/gin"
)

// SubmitFlag validates and records a flag submission
// @Summary Submit a flag
// @Description Check a candidate flag against a challenge and record the attempt
// @Tags Flags
// @Accept json
// @Produce json
// @Param request body SubmitFlagRequest true "Submission"
// @Success 200 {object} SubmitFlagResponse
// @Failure 400,401 {object} map[string]string
// @Router /flags/submit [post]
// @Security Bearer
func SubmitFlag(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req SubmitFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, MsgInvalidRequest)
		return
	}

	result, err := services.SubmitFlag(user, req.ChallengeID, req.Flag)
	if err != nil {
		// Expected outcomes come back as structured results, never as a
		// generic error page
		switch {
		case errors.Is(err, services.ErrChallengeNotFound):
			c.JSON(http.StatusOK, SubmitFlagResponse{Status: "error", Message: MsgChallengeMissing})
		case errors.Is(err, services.ErrLessonLocked):
			c.JSON(http.StatusOK, SubmitFlagResponse{Status: "error", Message: MsgLessonLocked})
		case errors.Is(err, services.ErrAttemptsExhausted):
			c.JSON(http.StatusOK, SubmitFlagResponse{Status: "error", Message: MsgMaxAttempts})
		case errors.Is(err, services.ErrAlreadySolved):
			c.JSON(http.StatusOK, SubmitFlagResponse{Status: "error", Message: MsgAlreadySolved})
		default:
			log.Printf("Flag submission failed for user %d challenge %d: %v", user.ID, req.ChallengeID, err)
			response.Error(c, http.StatusInternalServerError, MsgSubmitFailed)
		}
		return
	}

	if result.Correct {
		c.JSON(http.StatusOK, SubmitFlagResponse{Status: "success", Message: MsgCorrectFlag})
		return
	}
	c.JSON(http.StatusOK, SubmitFlagResponse{
		Status:          "error",
		Message:         MsgIncorrectFlag,
		ChallengeFailed: result.ChallengeFailed,
	})
}

// GetChallengeSolves lists the most recent solvers of a challenge
// @Summary Recent solvers of a challenge
// @Tags Flags
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {array} SolveInfo
// @Failure 401,404 {object} map[string]string
// @Router /challenges/{id}/solves [get]
// @Security Bearer
func GetChallengeSolves(c *gin.Context) {
	if _, err := middleware.GetUserFromRequest(c); err != nil {
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, MsgChallengeMissing)
		return
	}

	var solves []models.Solve
	if err := database.DB.Preload("User").
		Where("challenge_id = ?", challenge.ID).
		Order("date desc").
		Limit(10).
		Find(&solves).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch solves")
		return
	}

	infos := make([]SolveInfo, 0, len(solves))
	for _, s := range solves {
		username := ""
		if s.User != nil {
			username = s.User.Username
		}
		infos = append(infos, SolveInfo{User: username, Date: s.Date.Format("2006-01-02 15:04")})
	}
	c.JSON(http.StatusOK, infos)
}
