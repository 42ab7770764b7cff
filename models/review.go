package models

import (
	"time"

	"gorm.io/gorm"
)

// Review moderation is a two-flag gate: a review is publicly shown only when
// IsApproved and IsVisible both hold.
type Review struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"size:255" json:"name"`
	Email    string `gorm:"size:255" json:"email"`
	Rating   int    `json:"rating"`
	Title    string `gorm:"size:255" json:"title"`
	Comment  string `gorm:"type:text" json:"comment"`
	Location string `gorm:"size:255" json:"location,omitempty"`

	IsApproved bool `gorm:"default:false" json:"is_approved"`
	IsVisible  bool `gorm:"default:true" json:"is_visible"`
}
