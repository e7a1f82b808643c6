package services

import (
	"context"
	"errors"
	"time"

	"smart-hotel/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB    *gorm.DB
	Audit *AuditService
}

func NewRoomService(db *gorm.DB, audit *AuditService) *RoomService {
	return &RoomService{DB: db, Audit: audit}
}

// LockStatus is the staff view of a lock: whether a code is set, never the code.
type LockStatus struct {
	RoomNumber  string            `json:"roomNumber"`
	Status      models.RoomStatus `json:"status"`
	HasLockCode bool              `json:"hasLockCode"`
	LastUpdated time.Time         `json:"lastUpdated"`
}

func lockStatusOf(r models.Room) LockStatus {
	return LockStatus{
		RoomNumber:  r.RoomNumber,
		Status:      r.Status,
		HasLockCode: r.HasLockCode(),
		LastUpdated: r.UpdatedAt,
	}
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.WithContext(ctx).Order("room_number").Find(&rooms).Error; err != nil {
		return nil, Transient("list rooms", err)
	}
	return rooms, nil
}

func (s *RoomService) Available(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.WithContext(ctx).
		Where("status = ?", models.RoomFree).
		Order("room_number").
		Find(&rooms).Error
	if err != nil {
		return nil, Transient("list available rooms", err)
	}
	return rooms, nil
}

func (s *RoomService) GetByNumber(ctx context.Context, roomNumber string) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).Where("room_number = ?", roomNumber).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, Transient("load room", err)
	}
	return &room, nil
}

func (s *RoomService) LockStatusAll(ctx context.Context) ([]LockStatus, error) {
	rooms, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LockStatus, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, lockStatusOf(r))
	}
	return out, nil
}

func (s *RoomService) LockStatus(ctx context.Context, roomNumber string) (*LockStatus, error) {
	room, err := s.GetByNumber(ctx, roomNumber)
	if err != nil {
		return nil, err
	}
	st := lockStatusOf(*room)
	return &st, nil
}

// LockOperations returns the latest 50 lock operations of a room.
func (s *RoomService) LockOperations(ctx context.Context, roomNumber string) ([]models.LockOperation, error) {
	room, err := s.GetByNumber(ctx, roomNumber)
	if err != nil {
		return nil, err
	}
	return s.Audit.RecentLockOperations(ctx, room.ID, 50)
}
