package models

import (
	"time"

	"gorm.io/gorm"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`

	RoomID uint  `gorm:"column:room_id;index" json:"room_id"`
	UserID *uint `gorm:"column:user_id;index" json:"user_id,omitempty"`

	// Denormalized guest contact. Populated from the account for logged-in
	// bookings, entered directly for guest bookings. Kept flat so admin
	// search can LIKE over name/email.
	CustomerName    string `gorm:"column:customer_name;size:255" json:"customer_name"`
	CustomerEmail   string `gorm:"column:customer_email;size:255;index" json:"customer_email"`
	CustomerPhone   string `gorm:"column:customer_phone;size:64" json:"customer_phone"`
	SpecialRequests string `gorm:"column:special_requests;type:text" json:"special_requests,omitempty"`

	CheckIn  time.Time `gorm:"column:check_in" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out" json:"check_out"`
	Guests   int       `gorm:"column:guests" json:"guests"`

	// Frozen at creation: room.Price × nights. Later room price changes
	// must not retroactively alter past bookings.
	TotalAmount float64 `gorm:"column:total_amount" json:"total_amount"`

	Status       BookingStatus `gorm:"column:status;size:32;index" json:"status"`
	DeniedReason string        `gorm:"column:denied_reason;type:text" json:"denied_reason,omitempty"`
	AdminNotes   string        `gorm:"column:admin_notes;type:text" json:"admin_notes,omitempty"`

	Room     Room             `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	User     *User            `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Contacts []BookingContact `gorm:"foreignKey:BookingID" json:"contact_history,omitempty"`
}

// Nights returns the whole nights covered by the stay, rounding partial days
// up so a late checkout still bills the night.
func (b *Booking) Nights() int {
	return NightsBetween(b.CheckIn, b.CheckOut)
}

func NightsBetween(checkIn, checkOut time.Time) int {
	hours := checkOut.Sub(checkIn).Hours()
	if hours <= 0 {
		return 0
	}
	nights := int(hours / 24)
	if hours > float64(nights)*24 {
		nights++
	}
	return nights
}
