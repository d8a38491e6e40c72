package lessons

import (
	"errors"
	"log"
	"net/http"

	"ctfrange/database"
	"ctfrange/models"
	"ctfrange/services"
	"ctfrange/utils/response"

	"github.com/gin-gonic/gin"
)

// ListTemplates returns all lesson templates with derived totals (mentor only)
// @Summary List lesson templates
// @Tags Lessons
// @Produce json
// @Success 200 {array} TemplateResponse
// @Failure 401,403 {object} map[string]string
// @Router /mentor/templates [get]
// @Security Bearer
func ListTemplates(c *gin.Context) {
	var templates []models.LessonTemplate
	if err := database.DB.Preload("Challenges").Order("id").Find(&templates).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetchTmpl)
		return
	}

	resp := make([]TemplateResponse, 0, len(templates))
	for i := range templates {
		resp = append(resp, templateResponse(&templates[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateTemplate creates a lesson template (mentor only)
// @Summary Create a lesson template
// @Tags Lessons
// @Accept json
// @Produce json
// @Param request body TemplateRequest true "Template"
// @Success 201 {object} TemplateResponse
// @Failure 400,401,403 {object} map[string]string
// @Router /mentor/templates [post]
// @Security Bearer
func CreateTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var members []*models.Challenge
	if len(req.ChallengeIDs) > 0 {
		if err := database.DB.Where("id IN ?", req.ChallengeIDs).Find(&members).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, ErrFailedCreateTmpl)
			return
		}
	}

	template := models.LessonTemplate{
		Title:       req.Title,
		Description: req.Description,
		Challenges:  members,
	}
	if err := database.DB.Create(&template).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedCreateTmpl)
		return
	}
	c.JSON(http.StatusCreated, templateResponse(&template))
}

// UpdateTemplate edits a template and replaces its member set (mentor only)
// @Summary Update a lesson template
// @Tags Lessons
// @Accept json
// @Produce json
// @Param id path int true "Template ID"
// @Param request body TemplateRequest true "Template"
// @Success 200 {object} TemplateResponse
// @Failure 400,401,403,404 {object} map[string]string
// @Router /mentor/templates/{id} [put]
// @Security Bearer
func UpdateTemplate(c *gin.Context) {
	var template models.LessonTemplate
	if err := database.DB.Preload("Challenges").First(&template, "id = ?", c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrTemplateNotFound)
		return
	}

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var members []*models.Challenge
	if len(req.ChallengeIDs) > 0 {
		if err := database.DB.Where("id IN ?", req.ChallengeIDs).Find(&members).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, ErrFailedUpdateTmpl)
			return
		}
	}

	template.Title = req.Title
	template.Description = req.Description
	if err := database.DB.Save(&template).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedUpdateTmpl)
		return
	}
	if err := database.DB.Model(&template).Association("Challenges").Replace(members); err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedUpdateTmpl)
		return
	}

	template.Challenges = members
	c.JSON(http.StatusOK, templateResponse(&template))
}

// DeleteTemplate removes a template; the member challenges are untouched
// (mentor only)
// @Summary Delete a lesson template
// @Tags Lessons
// @Produce json
// @Param id path int true "Template ID"
// @Success 200 {object} map[string]string
// @Failure 401,403,404 {object} map[string]string
// @Router /mentor/templates/{id} [delete]
// @Security Bearer
func DeleteTemplate(c *gin.Context) {
	var template models.LessonTemplate
	if err := database.DB.First(&template, "id = ?", c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrTemplateNotFound)
		return
	}

	if err := database.DB.Select("Challenges").Delete(&template).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedDeleteTmpl)
		return
	}
	response.Message(c, http.StatusOK, "Template deleted")
}

// ApplyTemplate bulk-toggles the catalog from a template (mentor only)
// @Summary Apply a lesson template
// @Description exclusive leaves only the template's challenges active; enable/disable touch members only
// @Tags Lessons
// @Accept json
// @Produce json
// @Param id path int true "Template ID"
// @Param request body ApplyTemplateRequest true "Apply mode"
// @Success 200 {object} map[string]int64
// @Failure 400,401,403,404 {object} map[string]string
// @Router /mentor/templates/{id}/apply [post]
// @Security Bearer
func ApplyTemplate(c *gin.Context) {
	var template models.LessonTemplate
	if err := database.DB.First(&template, "id = ?", c.Param("id")).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrTemplateNotFound)
		return
	}

	var req ApplyTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	affected, err := services.ApplyLessonTemplate(template.ID, services.ApplyMode(req.Mode))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidApplyMode):
			response.Error(c, http.StatusBadRequest, ErrInvalidApplyMode)
		case errors.Is(err, services.ErrTemplateNotFound):
			response.Error(c, http.StatusNotFound, ErrTemplateNotFound)
		default:
			log.Printf("Failed to apply template %d: %v", template.ID, err)
			response.Error(c, http.StatusInternalServerError, ErrFailedApplyTmpl)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"affected": affected})
}

func templateResponse(t *models.LessonTemplate) TemplateResponse {
	ids := make([]uint, 0, len(t.Challenges))
	for _, ch := range t.Challenges {
		ids = append(ids, ch.ID)
	}
	return TemplateResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		ChallengeCount: t.ChallengeCount(),
		TotalPoints:    t.TotalPoints(),
		ChallengeIDs:   ids,
	}
}
