package models

import (
	"time"
)

// PostStatus is the lifecycle state of a calendar post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPublished PostStatus = "published"
)

// IsValid reports whether s is one of the known post statuses.
func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusDraft, PostStatusScheduled, PostStatusPublished:
		return true
	}
	return false
}

// Post is a single calendar entry belonging to a plan. Posts are created in
// bulk during calendar generation and individually editable afterwards.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PlanID      uint       `gorm:"not null;index" json:"plan_id"`
	Day         int        `gorm:"not null" json:"day"`
	Date        time.Time  `json:"date"`
	Format      string     `json:"format"`
	Caption     string     `gorm:"type:text" json:"caption"`
	Hashtags    []string   `gorm:"serializer:json" json:"hashtags"`
	Status      PostStatus `gorm:"default:draft" json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
