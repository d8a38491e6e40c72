package services

import (
	"errors"
	"fmt"

	"ctfrange/database"
	"ctfrange/models"

	"gorm.io/gorm"
)

// ApplyMode selects how a lesson template toggles the catalog
type ApplyMode string

const (
	ApplyExclusive ApplyMode = "exclusive" // only the template's challenges end up active
	ApplyEnable    ApplyMode = "enable"    // activate members, leave the rest alone
	ApplyDisable   ApplyMode = "disable"   // deactivate members, leave the rest alone
)

// ApplyLessonTemplate bulk-toggles challenge activity from a template and
// returns the number of challenges affected by the final toggle step.
// Exclusive mode runs disable-all and enable-members in one transaction so a
// half-applied catalog is never observable.
func ApplyLessonTemplate(templateID uint, mode ApplyMode) (int64, error) {
	var template models.LessonTemplate
	err := database.DB.Preload("Challenges").First(&template, "id = ?", templateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrTemplateNotFound
		}
		return 0, fmt.Errorf("failed to fetch lesson template: %w", err)
	}

	memberIDs := make([]uint, 0, len(template.Challenges))
	for _, c := range template.Challenges {
		memberIDs = append(memberIDs, c.ID)
	}

	var affected int64
	switch mode {
	case ApplyExclusive:
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Challenge{}).Where("1 = 1").
				Update("is_active", false).Error; err != nil {
				return fmt.Errorf("failed to disable challenges: %w", err)
			}
			if len(memberIDs) == 0 {
				return nil
			}
			res := tx.Model(&models.Challenge{}).Where("id IN ?", memberIDs).
				Update("is_active", true)
			if res.Error != nil {
				return fmt.Errorf("failed to enable template challenges: %w", res.Error)
			}
			affected = res.RowsAffected
			return nil
		})
	case ApplyEnable:
		res := database.DB.Model(&models.Challenge{}).Where("id IN ?", memberIDs).
			Update("is_active", true)
		err, affected = res.Error, res.RowsAffected
	case ApplyDisable:
		res := database.DB.Model(&models.Challenge{}).Where("id IN ?", memberIDs).
			Update("is_active", false)
		err, affected = res.Error, res.RowsAffected
	default:
		return 0, ErrInvalidApplyMode
	}
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// DisableAllChallenges is the lockdown switch: every challenge goes inactive
// in one statement
func DisableAllChallenges() (int64, error) {
	res := database.DB.Model(&models.Challenge{}).Where("1 = 1").
		Update("is_active", false)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to disable all challenges: %w", res.Error)
	}
	return res.RowsAffected, nil
}
