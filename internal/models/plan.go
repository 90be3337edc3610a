package models

import (
	"time"
)

// Plan is a content plan owned by a single user. Its posts are replaced
// wholesale on every successful calendar generation.
type Plan struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Niche     string    `gorm:"not null" json:"niche"`
	Platform  string    `gorm:"not null" json:"platform"`
	Goal      string    `gorm:"not null" json:"goal"`
	Tone      string    `gorm:"not null" json:"tone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"foreignKey:PlanID" json:"posts"`
}
