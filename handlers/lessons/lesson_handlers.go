package lessons

import (
	"log"
	"net/http"
	"time"

	"ctfrange/services"
	"ctfrange/utils/response"

	"github.com/gin-gonic/gin"
)

// GetLessonStatus reports the clock state every client polls
// @Summary Lesson clock status
// @Description Soft and hard deadlines plus whether submissions are locked
// @Tags Lessons
// @Produce json
// @Success 200 {object} LessonStatusResponse
// @Router /lesson/status [get]
func GetLessonStatus(c *gin.Context) {
	settings, err := services.GetLessonSettings()
	if err != nil {
		log.Printf("Failed to load lesson settings: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedFetch)
		return
	}

	c.JSON(http.StatusOK, LessonStatusResponse{
		IsHardDeadline: settings.IsHardDeadlinePassed(),
		HardDeadline:   formatTime(settings.HardDeadline),
		SoftDeadline:   formatTime(settings.EndTime),
	})
}

// GetLessonSettings returns the full settings row with the state label
// (mentor only)
// @Summary Lesson settings
// @Tags Lessons
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401,403 {object} map[string]string
// @Router /mentor/lesson [get]
// @Security Bearer
func GetLessonSettings(c *gin.Context) {
	settings, err := services.GetLessonSettings()
	if err != nil {
		log.Printf("Failed to load lesson settings: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedFetch)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": settings,
		"status":   settings.StatusAt(time.Now()),
	})
}

// StartOrExtendLesson starts the lesson window or adjusts its length
// (mentor only)
// @Summary Start or extend the lesson
// @Description Start a window now, or re-anchor the end time of a running one
// @Tags Lessons
// @Accept json
// @Produce json
// @Param request body StartLessonRequest true "Window length"
// @Success 200 {object} models.LessonSettings
// @Failure 400,401,403 {object} map[string]string
// @Router /mentor/lesson/start [post]
// @Security Bearer
func StartOrExtendLesson(c *gin.Context) {
	var req StartLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	settings, err := services.StartOrExtendLesson(req.DurationMinutes, req.DelayMinutes)
	if err != nil {
		log.Printf("Failed to start lesson: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedSave)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ResetLesson clears the lesson window (mentor only)
// @Summary Reset the lesson clock
// @Tags Lessons
// @Produce json
// @Success 200 {object} models.LessonSettings
// @Failure 401,403 {object} map[string]string
// @Router /mentor/lesson/reset [post]
// @Security Bearer
func ResetLesson(c *gin.Context) {
	settings, err := services.ResetLesson()
	if err != nil {
		log.Printf("Failed to reset lesson: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedSave)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ResetPlatform wipes attempts, solves, and the lesson window (mentor only)
// @Summary Platform reset
// @Description Delete all attempts and solves and clear the lesson clock
// @Tags Lessons
// @Produce json
// @Success 200 {object} services.ResetCounts
// @Failure 401,403 {object} map[string]string
// @Router /mentor/system/reset [post]
// @Security Bearer
func ResetPlatform(c *gin.Context) {
	counts, err := services.ResetPlatform()
	if err != nil {
		log.Printf("Platform reset failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "Failed to reset platform")
		return
	}
	c.JSON(http.StatusOK, counts)
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
