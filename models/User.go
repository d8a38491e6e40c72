package models

import "time"

// User represents a platform account, either a participant or a mentor
type User struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Username      string     `gorm:"type:varchar(100);unique;not null" json:"username"`
	Email         string     `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password      string     `gorm:"type:varchar(255);not null" json:"-"`
	AvatarURL     string     `gorm:"type:varchar(255);default:'https://api.dicebear.com/7.x/bottts/svg?seed=default'" json:"avatar_url"`
	Bio           *string    `gorm:"type:text" json:"bio"`
	Country       *string    `gorm:"type:varchar(50)" json:"country"`
	IsSuperuser   bool       `gorm:"not null;default:false" json:"is_superuser"`
	LastConnected *time.Time `gorm:"type:timestamp" json:"last_connected"`
	Groups        []*Group   `gorm:"many2many:user_groups;" json:"groups"`
	Solves        []*Solve   `gorm:"foreignKey:UserID" json:"-"`
}

// InGroup reports whether the user belongs to the named group
func (u *User) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

// MentorsGroup is the group whose members get mentor tooling access
const MentorsGroup = "Mentors"

// IsMentor reports whether the user may use mentor tooling
func (u *User) IsMentor() bool {
	return u.IsSuperuser || u.InGroup(MentorsGroup)
}
