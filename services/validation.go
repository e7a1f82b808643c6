package services

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"
	"time"

	"smart-hotel/models"
	"smart-hotel/utils"

	"github.com/go-playground/validator/v10"
)

var (
	idCardPattern = regexp.MustCompile(`^\d{17}[\dXx]$`)
	mobilePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)
)

// RegisterValidations installs the kiosk-specific tags on v. It is applied to
// the service validator and to gin's binding engine so both reject the same
// inputs.
func RegisterValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"idcard": func(fl validator.FieldLevel) bool {
			return idCardPattern.MatchString(fl.Field().String())
		},
		"cnmobile": func(fl validator.FieldLevel) bool {
			return mobilePattern.MatchString(fl.Field().String())
		},
		"lockcode": func(fl validator.FieldLevel) bool {
			return utils.IsValidLockCode(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	v.RegisterTagNameFunc(jsonFieldName)
	return nil
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

var validate = newValidator()

// NormalizeIDCard is the stored form of an ID card number: trimmed, with an
// upper-case X check digit.
func NormalizeIDCard(idCard string) string {
	return strings.ToUpper(strings.TrimSpace(idCard))
}

// RegisterInput is a kiosk self-registration request.
type RegisterInput struct {
	Name         string `json:"name" validate:"required,max=100"`
	IDCard       string `json:"idCard" validate:"required,idcard"`
	Phone        string `json:"phone" validate:"required,cnmobile"`
	Email        string `json:"email" validate:"omitempty,email,max=100"`
	Gender       string `json:"gender" validate:"required,oneof=Male Female"`
	BirthDate    string `json:"birthDate"`
	Address      string `json:"address"`
	RoomID       uint   `json:"roomId" validate:"required"`
	CheckInDate  string `json:"checkInDate" validate:"required"`
	CheckOutDate string `json:"checkOutDate" validate:"required"`
	LockCode     string `json:"lockCode" validate:"required,lockcode"`
}

// Registration is a RegisterInput that passed validation, with parsed dates.
type Registration struct {
	RegisterInput
	CheckIn   time.Time
	CheckOut  time.Time
	BirthDate *time.Time
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "please fill in all required fields"
	case "idcard":
		return "invalid ID card number format"
	case "cnmobile":
		return "invalid phone number format"
	case "lockcode":
		return fmt.Sprintf("smart lock code must be exactly %d digits", utils.LockCodeLength)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "email":
		return "invalid email format"
	default:
		return fmt.Sprintf("invalid %s", fe.Field())
	}
}

// BindingMessage turns a request binding failure into the message shown to
// the kiosk.
func BindingMessage(err error) string {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		return validationMessage(ves[0])
	}
	return "invalid request payload"
}

// ValidateRegistration checks every precondition of RegisterAndCheckIn
// without touching storage.
func ValidateRegistration(in RegisterInput) (*Registration, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.IDCard = NormalizeIDCard(in.IDCard)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)

	if err := validate.Struct(in); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) && len(ves) > 0 {
			return nil, Validation(validationMessage(ves[0]))
		}
		return nil, Validation(err.Error())
	}

	checkIn, err := utils.ParseStayDate(in.CheckInDate)
	if err != nil {
		return nil, Validation("invalid check-in date")
	}
	checkOut, err := utils.ParseStayDate(in.CheckOutDate)
	if err != nil {
		return nil, Validation("invalid check-out date")
	}
	if !checkOut.After(checkIn) {
		return nil, Validation("check-out date must be after check-in date")
	}

	reg := &Registration{RegisterInput: in, CheckIn: checkIn, CheckOut: checkOut}
	if strings.TrimSpace(in.BirthDate) != "" {
		bd, err := utils.ParseStayDate(in.BirthDate)
		if err != nil {
			return nil, Validation("invalid birth date")
		}
		reg.BirthDate = &bd
	}
	return reg, nil
}

// StayCharge returns the nights billed and the amount for a stay.
// Nights are whole calendar days, minimum one; the amount is rounded to cents.
func StayCharge(checkIn, checkOut time.Time, price float64) (int, float64) {
	nights := utils.CalendarDays(checkIn, checkOut)
	if nights < 1 {
		nights = 1
	}
	return nights, math.Round(price*float64(nights)*100) / 100
}

// ValidateLockRequest checks the room number / lock code pair used by
// check-out and lock verification.
func ValidateLockRequest(roomNumber, lockCode string) error {
	if strings.TrimSpace(roomNumber) == "" || strings.TrimSpace(lockCode) == "" {
		return Validation("please provide room number and smart lock code")
	}
	return nil
}

// ManualRoomStatus reports whether status may be set through the staff room
// status endpoint. Occupied is only reachable through check-in.
func ManualRoomStatus(status models.RoomStatus) bool {
	switch status {
	case models.RoomFree, models.RoomBooked, models.RoomMaintenance:
		return true
	}
	return false
}
