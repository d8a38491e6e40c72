package models

type ChallengeDifficulty string

const (
	DifficultyEasy   ChallengeDifficulty = "Easy"
	DifficultyMedium ChallengeDifficulty = "Medium"
	DifficultyHard   ChallengeDifficulty = "Hard"
	DifficultyInsane ChallengeDifficulty = "Insane"
)

// ValidDifficulty reports whether d is one of the known difficulty levels
func ValidDifficulty(d ChallengeDifficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyInsane:
		return true
	}
	return false
}

// Challenge represents a single CTF task. The flag is the scoring secret and
// is never serialized.
type Challenge struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Title       string              `gorm:"type:varchar(200);not null" json:"title"`
	CategoryID  uint                `gorm:"not null;column:category_id" json:"category_id"`
	Category    *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Description string              `gorm:"type:text" json:"description"`
	Points      int                 `gorm:"not null;default:100" json:"points"`
	Difficulty  ChallengeDifficulty `gorm:"type:varchar(20);not null;default:'Easy'" json:"difficulty"`
	Flag        string              `gorm:"type:varchar(200);not null" json:"-"`
	Author      string              `gorm:"type:varchar(100);default:'Admin'" json:"author"`
	MaxAttempts int                 `gorm:"not null;default:0" json:"max_attempts"` // 0 = unlimited
	IsActive    bool                `gorm:"not null;default:true" json:"is_active"`
	Solves      []*Solve            `gorm:"foreignKey:ChallengeID" json:"-"`
}
