package models

import (
	"time"
)

type CheckInStatus string

const (
	CheckInActive     CheckInStatus = "Active"
	CheckInCheckedOut CheckInStatus = "CheckedOut"
)

// CheckIn mirrors one occupancy. At most one Active row exists per room.
type CheckIn struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID     uint          `gorm:"column:booking_id;index;not null" json:"booking_id"`
	RoomID        uint          `gorm:"column:room_id;index;not null" json:"room_id"`
	GuestID       uint          `gorm:"column:guest_id;index;not null" json:"guest_id"`
	CheckInTime   time.Time     `gorm:"column:check_in_time;not null" json:"check_in_time"`
	CheckOutTime  *time.Time    `gorm:"column:check_out_time" json:"check_out_time"`
	SmartLockCode string        `gorm:"column:smart_lock_code;type:varchar(6);not null" json:"smart_lock_code"`
	Status        CheckInStatus `gorm:"column:status;type:varchar(20);index;not null;default:'Active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Booking *Booking `gorm:"foreignKey:BookingID;references:ID" json:"-"`
	Room    *Room    `gorm:"foreignKey:RoomID;references:ID" json:"-"`
	Guest   *Guest   `gorm:"foreignKey:GuestID;references:ID" json:"-"`
}
