package services

import (
	"context"
	"time"

	"smart-hotel/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingService serves the read side of bookings and stays. Writes go
// through LifecycleService.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type BookingView struct {
	ID            uint                 `json:"id"`
	GuestName     string               `json:"guestName"`
	IDCard        string               `json:"idCard"`
	Phone         string               `json:"phone"`
	RoomNumber    string               `json:"roomNumber"`
	RoomType      models.RoomType      `json:"roomType"`
	CheckInDate   datatypes.Date       `json:"checkInDate"`
	CheckOutDate  datatypes.Date       `json:"checkOutDate"`
	TotalAmount   float64              `json:"totalAmount"`
	Status        models.BookingStatus `json:"status"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time            `json:"createdAt"`
}

type BookingPage struct {
	Items []BookingView `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// CurrentStay is one active check-in as shown on the front desk screen.
type CurrentStay struct {
	ID            uint            `json:"id"`
	GuestName     string          `json:"guestName"`
	IDCard        string          `json:"idCard"`
	Phone         string          `json:"phone"`
	RoomNumber    string          `json:"roomNumber"`
	RoomType      models.RoomType `json:"roomType"`
	CheckInDate   datatypes.Date  `json:"checkInDate"`
	CheckOutDate  datatypes.Date  `json:"checkOutDate"`
	TotalAmount   float64         `json:"totalAmount"`
	SmartLockCode string          `json:"smartLockCode"`
	CheckInTime   time.Time       `json:"checkInTime"`
}

func (s *BookingService) bookingViews(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Table("bookings AS b").
		Select(`b.id, g.name AS guest_name, g.id_card, g.phone, r.room_number, r.room_type,
			b.check_in_date, b.check_out_date, b.total_amount, b.status, b.payment_status, b.created_at`).
		Joins("JOIN guests g ON b.guest_id = g.id").
		Joins("JOIN rooms r ON b.room_id = r.id")
}

// List pages through all bookings, newest first.
func (s *BookingService) List(ctx context.Context, page, limit int) (*BookingPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var total int64
	if err := s.DB.WithContext(ctx).Model(&models.Booking{}).Count(&total).Error; err != nil {
		return nil, Transient("count bookings", err)
	}

	items := []BookingView{}
	err := s.bookingViews(ctx).
		Order("b.created_at DESC").
		Order("b.id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, Transient("list bookings", err)
	}
	return &BookingPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// ByIDCard lists every booking of the guest holding idCard.
func (s *BookingService) ByIDCard(ctx context.Context, idCard string) ([]BookingView, error) {
	items := []BookingView{}
	err := s.bookingViews(ctx).
		Where("g.id_card = ?", NormalizeIDCard(idCard)).
		Order("b.created_at DESC").
		Scan(&items).Error
	if err != nil {
		return nil, Transient("list guest bookings", err)
	}
	return items, nil
}

// Current lists active stays, latest check-in first.
func (s *BookingService) Current(ctx context.Context) ([]CurrentStay, error) {
	stays := []CurrentStay{}
	err := s.DB.WithContext(ctx).
		Table("check_ins AS ci").
		Select(`ci.id, g.name AS guest_name, g.id_card, g.phone, r.room_number, r.room_type,
			b.check_in_date, b.check_out_date, b.total_amount, ci.smart_lock_code, ci.check_in_time`).
		Joins("JOIN guests g ON ci.guest_id = g.id").
		Joins("JOIN rooms r ON ci.room_id = r.id").
		Joins("JOIN bookings b ON ci.booking_id = b.id").
		Where("ci.status = ?", models.CheckInActive).
		Order("ci.check_in_time DESC").
		Scan(&stays).Error
	if err != nil {
		return nil, Transient("list current stays", err)
	}
	return stays, nil
}
