package models

import "time"

type UserType string

const (
	UserGuest  UserType = "guest"
	UserAdmin  UserType = "admin"
	UserSystem UserType = "system"
)

// SystemLog is append-only.
type SystemLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Action      string    `gorm:"column:action;type:varchar(100);not null" json:"action"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	UserType    UserType  `gorm:"column:user_type;type:varchar(10);not null" json:"user_type"`
	IPAddress   string    `gorm:"column:ip_address;type:varchar(45)" json:"ip_address"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}
