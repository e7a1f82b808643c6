package models

import (
	"time"
)

type RoomStatus string

const (
	RoomFree        RoomStatus = "Free"
	RoomBooked      RoomStatus = "Booked"
	RoomOccupied    RoomStatus = "Occupied"
	RoomMaintenance RoomStatus = "Maintenance"
)

// Valid reports whether s is one of the persisted room states.
func (s RoomStatus) Valid() bool {
	switch s {
	case RoomFree, RoomBooked, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

type RoomType string

const (
	RoomStandard     RoomType = "Standard"
	RoomDeluxe       RoomType = "Deluxe"
	RoomSuite        RoomType = "Suite"
	RoomPresidential RoomType = "Presidential"
)

// Room is provisioned once by the seed and never deleted.
// SmartLockCode is non-nil exactly while the room is Occupied.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomNumber    string     `gorm:"column:room_number;uniqueIndex;type:varchar(10);not null" json:"room_number"`
	RoomType      RoomType   `gorm:"column:room_type;type:varchar(20);not null" json:"room_type"`
	Floor         int        `gorm:"column:floor;not null" json:"floor"`
	Price         float64    `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Status        RoomStatus `gorm:"column:status;type:varchar(20);index;not null;default:'Free'" json:"status"`
	SmartLockCode *string    `gorm:"column:smart_lock_code;type:varchar(6)" json:"smart_lock_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasLockCode is what staff screens show instead of the code itself.
func (r Room) HasLockCode() bool {
	return r.SmartLockCode != nil && *r.SmartLockCode != ""
}
