package scoreboard

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"ctfrange/middleware"
	"ctfrange/services"
	"ctfrange/utils/response"

	"github.com/gin-gonic/gin"
)

// utf8BOM makes spreadsheet tools detect the encoding correctly
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportStandingsCSV streams the ranked standings as a semicolon-delimited
// CSV file (mentor only)
// @Summary Export standings
// @Description Download the current standings as UTF-8 CSV with BOM
// @Tags Scoreboard
// @Produce text/csv
// @Success 200 {file} binary
// @Failure 401,403 {object} map[string]string
// @Router /mentor/scoreboard/export [get]
// @Security Bearer
func ExportStandingsCSV(c *gin.Context) {
	if _, err := middleware.GetUserFromRequest(c); err != nil {
		return
	}

	ranked, err := services.GetLeaderboard(c.Request.Context())
	if err != nil {
		log.Printf("Failed to build standings export: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedExport)
		return
	}

	maxPossible, err := services.MaxPossiblePoints()
	if err != nil {
		log.Printf("Failed to sum active points: %v", err)
		response.Error(c, http.StatusInternalServerError, ErrFailedExport)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="standings.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")

	if _, err := c.Writer.Write(utf8BOM); err != nil {
		log.Printf("Failed to write BOM: %v", err)
		return
	}

	w := csv.NewWriter(c.Writer)
	w.Comma = ';'

	record := []string{"Rank", "Username", "Total Score", "Max Possible Score", "Completion Percentage"}
	if err := w.Write(record); err != nil {
		log.Printf("Failed to write CSV header: %v", err)
		return
	}

	for _, e := range ranked {
		percentage := services.CompletionPercentage(e.TotalPoints, maxPossible)
		record = []string{
			strconv.Itoa(e.Rank),
			e.Username,
			strconv.Itoa(e.TotalPoints),
			strconv.Itoa(maxPossible),
			fmt.Sprintf("%.2f%%", percentage),
		}
		if err := w.Write(record); err != nil {
			log.Printf("Failed to write CSV row: %v", err)
			return
		}
	}
	w.Flush()
}
