package services

import (
	"errors"
	"testing"
	"time"

	"smart-hotel/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() RegisterInput {
	return RegisterInput{
		Name:         "Zhang Wei",
		IDCard:       "11010119900307123x",
		Phone:        "13800138000",
		Email:        "zhang@example.com",
		Gender:       "Male",
		BirthDate:    "1990-03-07",
		RoomID:       101,
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-03",
		LockCode:     "123456",
	}
}

func requireValidation(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, KindValidation, appErr.Kind)
	assert.Equal(t, message, appErr.Message)
}

func TestValidateRegistration_OK(t *testing.T) {
	reg, err := ValidateRegistration(validInput())
	require.NoError(t, err)

	assert.Equal(t, "11010119900307123X", reg.IDCard, "check digit is upper-cased")
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), reg.CheckIn)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local), reg.CheckOut)
	require.NotNil(t, reg.BirthDate)
	assert.Equal(t, 1990, reg.BirthDate.Year())
}

func TestValidateRegistration_OptionalFields(t *testing.T) {
	in := validInput()
	in.Email = ""
	in.BirthDate = ""
	in.Address = ""

	reg, err := ValidateRegistration(in)
	require.NoError(t, err)
	assert.Nil(t, reg.BirthDate)
}

func TestValidateRegistration_Rejects(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*RegisterInput)
		message string
	}{
		{"missing name", func(in *RegisterInput) { in.Name = "  " }, "please fill in all required fields"},
		{"missing room", func(in *RegisterInput) { in.RoomID = 0 }, "please fill in all required fields"},
		{"missing lock code", func(in *RegisterInput) { in.LockCode = "" }, "please fill in all required fields"},
		{"short id card", func(in *RegisterInput) { in.IDCard = "1101011990030712" }, "invalid ID card number format"},
		{"letter in id card", func(in *RegisterInput) { in.IDCard = "1101011990030A123X" }, "invalid ID card number format"},
		{"landline", func(in *RegisterInput) { in.Phone = "01012345678" }, "invalid phone number format"},
		{"five digit code", func(in *RegisterInput) { in.LockCode = "12345" }, "smart lock code must be exactly 6 digits"},
		{"alpha code", func(in *RegisterInput) { in.LockCode = "12345a" }, "smart lock code must be exactly 6 digits"},
		{"bad gender", func(in *RegisterInput) { in.Gender = "Other" }, "gender must be one of: Male Female"},
		{"bad email", func(in *RegisterInput) { in.Email = "nope" }, "invalid email format"},
		{"bad check-in", func(in *RegisterInput) { in.CheckInDate = "01/01/2024" }, "invalid check-in date"},
		{"same day", func(in *RegisterInput) { in.CheckOutDate = in.CheckInDate }, "check-out date must be after check-in date"},
		{"reversed", func(in *RegisterInput) { in.CheckOutDate = "2023-12-31" }, "check-out date must be after check-in date"},
		{"bad birth date", func(in *RegisterInput) { in.BirthDate = "yesterday" }, "invalid birth date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := ValidateRegistration(in)
			requireValidation(t, err, tc.message)
		})
	}
}

func TestStayCharge(t *testing.T) {
	in := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

	nights, amount := StayCharge(in, in.AddDate(0, 0, 2), 299.00)
	assert.Equal(t, 2, nights)
	assert.Equal(t, 598.00, amount)

	nights, amount = StayCharge(in, in, 499.00)
	assert.Equal(t, 1, nights, "minimum one night")
	assert.Equal(t, 499.00, amount)

	_, amount = StayCharge(in, in.AddDate(0, 0, 3), 0.1)
	assert.Equal(t, 0.3, amount, "rounded to cents")
}

func TestValidateLockRequest(t *testing.T) {
	assert.NoError(t, ValidateLockRequest("101", "123456"))
	requireValidation(t, ValidateLockRequest("", "123456"), "please provide room number and smart lock code")
	requireValidation(t, ValidateLockRequest("101", " "), "please provide room number and smart lock code")
}

func TestManualRoomStatus(t *testing.T) {
	assert.True(t, ManualRoomStatus(models.RoomFree))
	assert.True(t, ManualRoomStatus(models.RoomBooked))
	assert.True(t, ManualRoomStatus(models.RoomMaintenance))
	assert.False(t, ManualRoomStatus(models.RoomOccupied))
}

func TestBindingMessage(t *testing.T) {
	assert.Equal(t, "invalid request payload", BindingMessage(errors.New("unexpected EOF")))

	err := validate.Struct(RegisterInput{})
	assert.Equal(t, "please fill in all required fields", BindingMessage(err))
}

func TestNormalizeIDCard(t *testing.T) {
	assert.Equal(t, "11010119900307123X", NormalizeIDCard(" 11010119900307123x "))
	assert.Equal(t, "110101199001011234", NormalizeIDCard("110101199001011234"))
}
