package services

import (
	"fmt"
	"time"

	"ctfrange/database"
	"ctfrange/models"
)

// GetLessonSettings returns the singleton settings row, creating it with all
// fields unset on first access
func GetLessonSettings() (models.LessonSettings, error) {
	var settings models.LessonSettings
	err := database.DB.
		Where(models.LessonSettings{ID: models.LessonSettingsID}).
		FirstOrCreate(&settings).Error
	if err != nil {
		return models.LessonSettings{}, fmt.Errorf("failed to load lesson settings: %w", err)
	}
	return settings, nil
}

// StartOrExtendLesson configures the lesson window. Starting a fresh lesson
// anchors the window at now; when a window already exists the end time is
// re-anchored to the original start, so a mentor can lengthen or shorten the
// session without restarting the clock. The hard deadline always trails the
// end time by the delay.
func StartOrExtendLesson(durationMinutes int, delayMinutes int) (models.LessonSettings, error) {
	settings, err := GetLessonSettings()
	if err != nil {
		return models.LessonSettings{}, err
	}

	now := time.Now()
	duration := time.Duration(durationMinutes) * time.Minute
	delay := time.Duration(delayMinutes) * time.Minute

	if settings.StartTime == nil || settings.EndTime == nil {
		start := now
		end := now.Add(duration)
		settings.StartTime = &start
		settings.EndTime = &end
	} else {
		end := settings.StartTime.Add(duration)
		settings.EndTime = &end
	}
	hard := settings.EndTime.Add(delay)
	settings.HardDeadline = &hard

	if err := database.DB.Save(&settings).Error; err != nil {
		return models.LessonSettings{}, fmt.Errorf("failed to save lesson settings: %w", err)
	}
	return settings, nil
}

// ResetLesson clears the lesson window, returning the platform to the
// always-active state
func ResetLesson() (models.LessonSettings, error) {
	settings, err := GetLessonSettings()
	if err != nil {
		return models.LessonSettings{}, err
	}

	settings.StartTime = nil
	settings.EndTime = nil
	settings.HardDeadline = nil

	// Save skips zero-value struct fields, so null out the columns explicitly
	err = database.DB.Model(&models.LessonSettings{ID: models.LessonSettingsID}).
		Select("start_time", "end_time", "hard_deadline").
		Updates(map[string]interface{}{"start_time": nil, "end_time": nil, "hard_deadline": nil}).Error
	if err != nil {
		return models.LessonSettings{}, fmt.Errorf("failed to reset lesson settings: %w", err)
	}
	return settings, nil
}
