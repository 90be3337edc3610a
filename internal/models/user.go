// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account in the PostPilot application.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Plans     []Plan    `gorm:"foreignKey:UserID" json:"plans,omitempty"`
}
