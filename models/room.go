package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room statuses. This is a coarse flag the admin sets by hand (e.g. pulling a
// room for maintenance); it is not derived from booking occupancy.
const (
	RoomAvailable   = "available"
	RoomBooked      = "booked"
	RoomMaintenance = "maintenance"
)

type Room struct {
	gorm.Model

	RoomNumber  string  `json:"room_number" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Type        string  `json:"type" gorm:"size:100;index"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity"`
	Status      string  `json:"status" gorm:"size:32;default:available"`
	Description string  `json:"description" gorm:"type:text"`

	Amenities datatypes.JSON `json:"amenities,omitempty" gorm:"column:amenities"`
}
