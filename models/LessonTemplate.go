package models

import "time"

// LessonTemplate is a curated set of challenges a mentor can activate in one
// step when starting a lesson. It is a shopping list only and does not gate
// submissions by itself.
type LessonTemplate struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"type:varchar(200);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Challenges  []*Challenge `gorm:"many2many:lesson_template_challenges;" json:"challenges,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ChallengeCount returns the number of member challenges
func (t *LessonTemplate) ChallengeCount() int {
	return len(t.Challenges)
}

// TotalPoints returns the sum of points over the member challenges
func (t *LessonTemplate) TotalPoints() int {
	total := 0
	for _, c := range t.Challenges {
		total += c.Points
	}
	return total
}
