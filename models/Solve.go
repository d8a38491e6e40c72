package models

import "time"

// Solve records the first correct submission of a user for a challenge.
// The composite unique index is the authoritative guard against double
// credit: concurrent correct submissions race on it and the loser gets a
// constraint violation instead of a second row.
type Solve struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_solve_user_challenge;column:user_id" json:"user_id"`
	ChallengeID uint       `gorm:"not null;uniqueIndex:idx_solve_user_challenge;column:challenge_id" json:"challenge_id"`
	Date        time.Time  `gorm:"not null;autoCreateTime" json:"date"`
	User        *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Challenge   *Challenge `gorm:"foreignKey:ChallengeID;constraint:OnDelete:CASCADE" json:"challenge,omitempty"`
}
