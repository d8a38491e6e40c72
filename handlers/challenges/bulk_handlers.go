package challenges

import (
	"log"
	"net/http"

	"ctfrange/database"
	"ctfrange/models"
	"ctfrange/services"
	"ctfrange/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// BulkAction applies one action to a selected set of challenges (mentor only)
// @Summary Bulk challenge action
// @Description Activate, deactivate, or delete the selected challenges
// @Tags Challenges
// @Accept json
// @Produce json
// @Param request body BulkActionRequest true "Action and targets"
// @Success 200 {object} map[string]int64
// @Failure 400,401,403 {object} map[string]string
// @Router /mentor/challenges/bulk [post]
// @Security Bearer
func BulkAction(c *gin.Context) {
	var req BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var res int64
	var err error
	switch req.Action {
	case "activate":
		r := database.DB.Model(&models.Challenge{}).Where("id IN ?", req.ChallengeIDs).Update("is_active", true)
		res, err = r.RowsAffected, r.Error
	case "deactivate":
		r := database.DB.Model(&models.Challenge{}).Where("id IN ?", req.ChallengeIDs).Update("is_active", false)
		res, err = r.RowsAffected, r.Error
	case "delete":
		r := database.DB.Where("id IN ?", req.ChallengeIDs).Delete(&models.Challenge{})
		res, err = r.RowsAffected, r.Error
	default:
		response.Error(c, http.StatusBadRequest, ErrUnknownBulkAction)
		return
	}
	if err != nil {
		log.Printf("Bulk challenge action %q failed: %v", req.Action, err)
		response.Error(c, http.StatusInternalServerError, ErrFailedBulkAction)
		return
	}

	c.JSON(http.StatusOK, gin.H{"affected": res})
}

// DisableAllChallenges deactivates every challenge (mentor only)
// @Summary Disable all challenges
// @Description Lockdown switch: deactivate the entire catalog in one statement
// @Tags Challenges
// @Produce json
// @Success 200 {object} map[string]int64
// @Failure 401,403 {object} map[string]string
// @Router /mentor/challenges/disable_all [post]
// @Security Bearer
func DisableAllChallenges(c *gin.Context) {
	affected, err := services.DisableAllChallenges()
	if err != nil {
		log.Printf("Disable all challenges failed: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedBulkAction)
		return
	}
	c.JSON(http.StatusOK, gin.H{"affected": affected})
}

// ExportChallengesExcel exports the full catalog, flags included, as an xlsx
// workbook (mentor only)
// @Summary Export challenges
// @Tags Challenges
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 401,403 {object} map[string]string
// @Router /mentor/challenges/export [get]
// @Security Bearer
func ExportChallengesExcel(c *gin.Context) {
	var challengeList []models.Challenge
	if err := database.DB.Preload("Category").Order("id").Find(&challengeList).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedExport)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Challenges"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Title", "Category", "Points", "Difficulty", "Flag", "Author", "Max Attempts", "Active"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, ch := range challengeList {
		categoryName := ""
		if ch.Category != nil {
			categoryName = ch.Category.Name
		}
		values := []interface{}{ch.ID, ch.Title, categoryName, ch.Points, string(ch.Difficulty), ch.Flag, ch.Author, ch.MaxAttempts, ch.IsActive}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Disposition", `attachment; filename="challenges.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		log.Printf("Failed to write challenge export: %v", err)
	}
}
