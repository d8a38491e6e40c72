package services

import (
	"fmt"

	"ctfrange/database"
	"ctfrange/models"

	"gorm.io/gorm"
)

// ResetCounts reports what a platform reset removed
type ResetCounts struct {
	Attempts int64 `json:"attempts"`
	Solves   int64 `json:"solves"`
}

// ResetPlatform wipes all attempts and solves and clears the lesson window in
// one transaction. Users, challenges, and categories survive. Confirmation is
// the caller's concern.
func ResetPlatform() (ResetCounts, error) {
	var counts ResetCounts

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("1 = 1").Delete(&models.Attempt{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete attempts: %w", res.Error)
		}
		counts.Attempts = res.RowsAffected

		res = tx.Where("1 = 1").Delete(&models.Solve{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete solves: %w", res.Error)
		}
		counts.Solves = res.RowsAffected

		err := tx.Model(&models.LessonSettings{}).
			Where("id = ?", models.LessonSettingsID).
			Updates(map[string]interface{}{"start_time": nil, "end_time": nil, "hard_deadline": nil}).Error
		if err != nil {
			return fmt.Errorf("failed to clear lesson settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return ResetCounts{}, err
	}

	InvalidateScoreboardCache()
	return counts, nil
}
