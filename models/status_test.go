package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	all := []BookingStatus{BookingBooked, BookingOccupied, BookingCheckedOut, BookingCancelled}
	allowed := map[BookingStatus][]BookingStatus{
		BookingBooked:   {BookingOccupied, BookingCancelled},
		BookingOccupied: {BookingCheckedOut},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatus_Active(t *testing.T) {
	assert.True(t, BookingBooked.Active())
	assert.True(t, BookingOccupied.Active())
	assert.False(t, BookingCheckedOut.Active())
	assert.False(t, BookingCancelled.Active())
}

func TestRoomStatus_Valid(t *testing.T) {
	for _, s := range []RoomStatus{RoomFree, RoomBooked, RoomOccupied, RoomMaintenance} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, RoomStatus("Cleaning").Valid())
	assert.False(t, RoomStatus("").Valid())
}

func TestRoom_HasLockCode(t *testing.T) {
	code := "123456"
	empty := ""
	assert.True(t, Room{SmartLockCode: &code}.HasLockCode())
	assert.False(t, Room{SmartLockCode: &empty}.HasLockCode())
	assert.False(t, Room{}.HasLockCode())
}
