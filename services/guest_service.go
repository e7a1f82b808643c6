package services

import (
	"context"
	"errors"

	"smart-hotel/models"

	"gorm.io/gorm"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

func (s *GuestService) GetByID(ctx context.Context, id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.WithContext(ctx).First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, Transient("load guest", err)
	}
	return &guest, nil
}

func (s *GuestService) GetByIDCard(ctx context.Context, idCard string) (*models.Guest, error) {
	var guest models.Guest
	err := s.DB.WithContext(ctx).
		Where("id_card = ?", NormalizeIDCard(idCard)).
		First(&guest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, Transient("load guest", err)
	}
	return &guest, nil
}

// Bookings returns the guest's bookings with their rooms, newest first. The
// room's lock code is never loaded.
func (s *GuestService) Bookings(ctx context.Context, guestID uint) ([]models.Booking, error) {
	if _, err := s.GetByID(ctx, guestID); err != nil {
		return nil, err
	}
	bookings := []models.Booking{}
	err := s.DB.WithContext(ctx).
		Preload("Room", func(db *gorm.DB) *gorm.DB {
			return db.Omit("smart_lock_code")
		}).
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, Transient("list guest bookings", err)
	}
	return bookings, nil
}
