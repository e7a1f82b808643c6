package models

import "time"

type LockOperationType string

const (
	LockSetCode    LockOperationType = "SetCode"
	LockVerifyCode LockOperationType = "VerifyCode"
	LockResetCode  LockOperationType = "ResetCode"
	LockCheckOut   LockOperationType = "CheckOut"
)

type LockOperationResult string

const (
	LockSuccess LockOperationResult = "Success"
	LockFailure LockOperationResult = "Failure"
)

// LockOperation is append-only. RoomID is nil when the request named a room
// number that does not exist.
type LockOperation struct {
	ID              uint                `gorm:"primaryKey" json:"id"`
	RoomID          *uint               `gorm:"column:room_id;index" json:"room_id"`
	OperationType   LockOperationType   `gorm:"column:operation_type;type:varchar(20);not null" json:"operation_type"`
	OperationResult LockOperationResult `gorm:"column:operation_result;type:varchar(10);not null" json:"operation_result"`
	IPAddress       string              `gorm:"column:ip_address;type:varchar(45)" json:"ip_address"`
	CreatedAt       time.Time           `gorm:"index" json:"created_at"`

	Room *Room `gorm:"foreignKey:RoomID;references:ID" json:"-"`
}
