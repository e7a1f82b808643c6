package models

import (
	"time"

	"gorm.io/datatypes"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Guest is keyed by the government ID card; repeat registration overwrites
// the contact fields (last write wins).
type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Name      string          `gorm:"column:name;type:varchar(100);not null" json:"name"`
	IDCard    string          `gorm:"column:id_card;type:varchar(18);uniqueIndex;not null" json:"id_card"`
	Phone     string          `gorm:"column:phone;type:varchar(20);not null" json:"phone"`
	Email     string          `gorm:"column:email;type:varchar(100)" json:"email"`
	Gender    Gender          `gorm:"column:gender;type:varchar(10);not null" json:"gender"`
	BirthDate *datatypes.Date `gorm:"column:birth_date" json:"birth_date"`
	Address   string          `gorm:"column:address;type:text" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
