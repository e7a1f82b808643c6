package controllers

import (
	"context"

	"smart-hotel/models"
	"smart-hotel/services"
)

// Lifecycle is the write side: every room, booking and lock transition.
type Lifecycle interface {
	RegisterAndCheckIn(ctx context.Context, in services.RegisterInput, ip string) (*services.CheckInResult, error)
	CheckOut(ctx context.Context, roomNumber, lockCode, ip string) (*services.CheckOutResult, error)
	CancelBooking(ctx context.Context, bookingID uint, ip string) error
	VerifyLockCode(ctx context.Context, roomNumber, lockCode, ip string) (*services.LockVerifyResult, error)
	ResetLockCode(ctx context.Context, roomNumber, ip string) (*services.LockResetResult, error)
	SetLockCode(ctx context.Context, roomID uint, lockCode, ip string) (*services.LockResetResult, error)
	UpdateRoomStatus(ctx context.Context, roomID uint, status models.RoomStatus, ip string) (*models.Room, error)
}

type RoomReader interface {
	List(ctx context.Context) ([]models.Room, error)
	Available(ctx context.Context) ([]models.Room, error)
	GetByNumber(ctx context.Context, roomNumber string) (*models.Room, error)
	LockStatusAll(ctx context.Context) ([]services.LockStatus, error)
	LockStatus(ctx context.Context, roomNumber string) (*services.LockStatus, error)
	LockOperations(ctx context.Context, roomNumber string) ([]models.LockOperation, error)
}

type BookingReader interface {
	List(ctx context.Context, page, limit int) (*services.BookingPage, error)
	ByIDCard(ctx context.Context, idCard string) ([]services.BookingView, error)
	Current(ctx context.Context) ([]services.CurrentStay, error)
}

type GuestReader interface {
	GetByID(ctx context.Context, id uint) (*models.Guest, error)
	GetByIDCard(ctx context.Context, idCard string) (*models.Guest, error)
	Bookings(ctx context.Context, guestID uint) ([]models.Booking, error)
}
