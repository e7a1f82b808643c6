package models

import (
	"time"

	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingBooked     BookingStatus = "Booked"
	BookingOccupied   BookingStatus = "Occupied"
	BookingCheckedOut BookingStatus = "CheckedOut"
	BookingCancelled  BookingStatus = "Cancelled"
)

// CanTransitionTo encodes Booked -> Occupied -> CheckedOut and Booked -> Cancelled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingBooked:
		return next == BookingOccupied || next == BookingCancelled
	case BookingOccupied:
		return next == BookingCheckedOut
	}
	return false
}

// Active bookings keep their room out of the Free pool.
func (s BookingStatus) Active() bool {
	return s == BookingBooked || s == BookingOccupied
}

type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "Unpaid"
	PaymentPaid          PaymentStatus = "Paid"
	PaymentPartiallyPaid PaymentStatus = "PartiallyPaid"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID          uint           `gorm:"column:room_id;index;not null" json:"room_id"`
	GuestID         uint           `gorm:"column:guest_id;index;not null" json:"guest_id"`
	CheckInDate     datatypes.Date `gorm:"column:check_in_date;not null" json:"check_in_date"`
	CheckOutDate    datatypes.Date `gorm:"column:check_out_date;not null" json:"check_out_date"`
	TotalAmount     float64        `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
	Status          BookingStatus  `gorm:"column:status;type:varchar(20);index;not null;default:'Booked'" json:"status"`
	PaymentStatus   PaymentStatus  `gorm:"column:payment_status;type:varchar(20);not null;default:'Unpaid'" json:"payment_status"`
	SpecialRequests string         `gorm:"column:special_requests;type:text" json:"special_requests,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room  *Room  `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Guest *Guest `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
}
