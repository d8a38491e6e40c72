package challenges

import (
	"net/http"

	"ctfrange/database"
	"ctfrange/middleware"
	"ctfrange/models"
	"ctfrange/services"
	"ctfrange/utils/response"

	"github.com/gin-gonic/gin"
)

// ListChallenges returns the catalog for the authenticated participant, with
// per-challenge solved/failed state and recent solvers
// @Summary List challenges
// @Description Get all challenges with the caller's progress
// @Tags Challenges
// @Produce json
// @Success 200 {array} ChallengeListItem
// @Failure 401 {object} map[string]string
// @Router /challenges [get]
// @Security Bearer
func ListChallenges(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var challengeList []models.Challenge
	if err := database.DB.Preload("Category").Order("id").Find(&challengeList).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetch)
		return
	}

	var solves []models.Solve
	if err := database.DB.Where("user_id = ?", user.ID).Find(&solves).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetch)
		return
	}
	solvedIDs := make(map[uint]bool, len(solves))
	for _, s := range solves {
		solvedIDs[s.ChallengeID] = true
	}

	type attemptCount struct {
		ChallengeID uint
		Count       int
	}
	var counts []attemptCount
	err = database.DB.Model(&models.Attempt{}).
		Select("challenge_id, COUNT(*) AS count").
		Where("user_id = ?", user.ID).
		Group("challenge_id").
		Scan(&counts).Error
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetch)
		return
	}
	attemptsByChallenge := make(map[uint]int, len(counts))
	for _, ac := range counts {
		attemptsByChallenge[ac.ChallengeID] = ac.Count
	}

	settings, err := services.GetLessonSettings()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetch)
		return
	}
	locked := settings.IsHardDeadlinePassed()

	items := make([]ChallengeListItem, 0, len(challengeList))
	for _, ch := range challengeList {
		categoryName := ""
		if ch.Category != nil {
			categoryName = ch.Category.Name
		}

		var recent []models.Solve
		err := database.DB.Preload("User").
			Where("challenge_id = ?", ch.ID).
			Order("date desc").
			Limit(5).
			Find(&recent).Error
		if err != nil {
			response.Error(c, http.StatusInternalServerError, ErrFailedFetch)
			return
		}
		solvers := make([]SolverInfo, 0, len(recent))
		for _, s := range recent {
			if s.User != nil {
				solvers = append(solvers, SolverInfo{User: s.User.Username, Date: s.Date.Format("2006-01-02 15:04")})
			}
		}

		used := attemptsByChallenge[ch.ID]
		items = append(items, ChallengeListItem{
			ID:           ch.ID,
			Title:        ch.Title,
			Category:     categoryName,
			Points:       ch.Points,
			Difficulty:   string(ch.Difficulty),
			Description:  ch.Description,
			Author:       ch.Author,
			Solved:       solvedIDs[ch.ID],
			Failed:       services.IsChallengeFailed(used, ch.MaxAttempts, solvedIDs[ch.ID], locked),
			AttemptsUsed: used,
			MaxAttempts:  ch.MaxAttempts,
			Solvers:      solvers,
		})
	}

	c.JSON(http.StatusOK, items)
}

// CreateChallenge creates a challenge (mentor only)
// @Summary Create a challenge
// @Tags Challenges
// @Accept json
// @Produce json
// @Param request body ChallengeRequest true "Challenge"
// @Success 201 {object} models.Challenge
// @Failure 400,401,403 {object} map[string]string
// @Router /mentor/challenges [post]
// @Security Bearer
func CreateChallenge(c *gin.Context) {
	var req ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	challenge, errMsg := challengeFromRequest(req)
	if errMsg != "" {
		response.Error(c, http.StatusBadRequest, errMsg)
		return
	}

	var category models.Category
	if err := database.DB.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrCategoryNotFound)
		return
	}

	if err := database.DB.Create(&challenge).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedCreate)
		return
	}
	c.JSON(http.StatusCreated, challenge)
}

// UpdateChallenge edits a challenge (mentor only)
// @Summary Update a challenge
// @Tags Challenges
// @Accept json
// @Produce json
// @Param id path int true "Challenge ID"
// @Param request body ChallengeRequest true "Challenge"
// @Success 200 {object} models.Challenge
// @Failure 400,401,403,404 {object} map[string]string
// @Router /mentor/challenges/{id} [put]
// @Security Bearer
func UpdateChallenge(c *gin.Context) {
	var existing models.Challenge
	if err := database.DB.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	var req ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	updated, errMsg := challengeFromRequest(req)
	if errMsg != "" {
		response.Error(c, http.StatusBadRequest, errMsg)
		return
	}

	var category models.Category
	if err := database.DB.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrCategoryNotFound)
		return
	}
	updated.ID = existing.ID

	if err := database.DB.Save(&updated).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedUpdate)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteChallenge removes a challenge and, through the FK cascade, its
// attempts and solves (mentor only)
// @Summary Delete a challenge
// @Tags Challenges
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {object} map[string]string
// @Failure 401,403,404 {object} map[string]string
// @Router /mentor/challenges/{id} [delete]
// @Security Bearer
func DeleteChallenge(c *gin.Context) {
	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	if err := database.DB.Delete(&challenge).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedDelete)
		return
	}
	response.Message(c, http.StatusOK, "Challenge deleted")
}

// ToggleChallenge flips a single challenge's active state (mentor only)
// @Summary Toggle a challenge
// @Tags Challenges
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {object} models.Challenge
// @Failure 401,403,404 {object} map[string]string
// @Router /mentor/challenges/{id}/toggle [put]
// @Security Bearer
func ToggleChallenge(c *gin.Context) {
	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	challenge.IsActive = !challenge.IsActive
	if err := database.DB.Model(&challenge).Update("is_active", challenge.IsActive).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedUpdate)
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// ListChallengesMentor returns the full catalog including inactive challenges
// (mentor only)
// @Summary List challenges for mentors
// @Tags Challenges
// @Produce json
// @Success 200 {array} models.Challenge
// @Failure 401,403 {object} map[string]string
// @Router /mentor/challenges [get]
// @Security Bearer
func ListChallengesMentor(c *gin.Context) {
	var challengeList []models.Challenge
	if err := database.DB.Preload("Category").Order("id desc").Find(&challengeList).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetch)
		return
	}
	c.JSON(http.StatusOK, challengeList)
}

func challengeFromRequest(req ChallengeRequest) (models.Challenge, string) {
	points := 100
	if req.Points != nil {
		points = *req.Points
	}
	if points < 0 {
		return models.Challenge{}, ErrNegativePoints
	}

	maxAttempts := 0
	if req.MaxAttempts != nil {
		maxAttempts = *req.MaxAttempts
	}
	if maxAttempts < 0 {
		return models.Challenge{}, ErrNegativeAttempts
	}

	difficulty := models.DifficultyEasy
	if req.Difficulty != "" {
		difficulty = models.ChallengeDifficulty(req.Difficulty)
		if !models.ValidDifficulty(difficulty) {
			return models.Challenge{}, ErrInvalidDifficulty
		}
	}

	author := req.Author
	if author == "" {
		author = "Admin"
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return models.Challenge{
		Title:       req.Title,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Points:      points,
		Difficulty:  difficulty,
		Flag:        req.Flag,
		Author:      author,
		MaxAttempts: maxAttempts,
		IsActive:    active,
	}, ""
}
