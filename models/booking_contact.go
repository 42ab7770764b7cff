package models

import "time"

// BookingContact is one "contact customer" action taken by an admin against a
// booking. Rows are append-only: never updated, never deleted, kept even when
// the underlying delivery fails, so the history records intent.
type BookingContact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"date"`

	BookingID uint `gorm:"column:booking_id;index" json:"booking_id"`

	Type          string `gorm:"column:type;size:64" json:"type"`
	ContactMethod string `gorm:"column:contact_method;size:32" json:"contact_method"`
	Subject       string `gorm:"column:subject;size:255" json:"subject"`
	Message       string `gorm:"column:message;type:text" json:"message"`
}
