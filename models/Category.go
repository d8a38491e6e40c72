package models

// Category groups challenges by topic. Deleting a category deletes its
// challenges (and their attempts and solves) through the FK cascade.
type Category struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	Name       string       `gorm:"type:varchar(100);not null" json:"name"`
	Challenges []*Challenge `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"challenges,omitempty"`
}
