package models

// Group represents a named set of users used for role checks
type Group struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Name  string  `gorm:"type:varchar(100);unique;not null" json:"name"`
	Users []*User `gorm:"many2many:user_groups;" json:"-"`
}
