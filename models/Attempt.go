package models

import "time"

// Attempt is one flag submission, correct or not. Rows are append-only and
// only removed by a platform reset or through the owning FK cascades.
type Attempt struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index;column:user_id" json:"user_id"`
	ChallengeID uint       `gorm:"not null;index;column:challenge_id" json:"challenge_id"`
	FlagInput   string     `gorm:"type:varchar(200);not null" json:"flag_input"`
	Timestamp   time.Time  `gorm:"not null;autoCreateTime" json:"timestamp"`
	IsCorrect   bool       `gorm:"not null;default:false" json:"is_correct"`
	User        *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Challenge   *Challenge `gorm:"foreignKey:ChallengeID;constraint:OnDelete:CASCADE" json:"-"`
}
