package services

import (
	"context"
	"log"

	"smart-hotel/models"

	"gorm.io/gorm"
)

// AuditService appends to system_logs and lock_operations. It always writes
// through its own handle, never a caller's transaction, so a record survives
// the rollback of the operation it describes. Failures are logged and
// swallowed: the audit trail must not turn a business result into an error.
type AuditService struct {
	DB *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{DB: db}
}

// LogSystem records a business event.
func (s *AuditService) LogSystem(ctx context.Context, action, description string, userType models.UserType, ip string) {
	entry := models.SystemLog{
		Action:      action,
		Description: description,
		UserType:    userType,
		IPAddress:   ip,
	}
	if err := s.DB.WithContext(context.WithoutCancel(ctx)).Create(&entry).Error; err != nil {
		log.Printf("⚠️ system log %q not recorded: %v", action, err)
	}
}

// LogLockOperation records one smart-lock interaction. roomID is nil when the
// request named an unknown room.
func (s *AuditService) LogLockOperation(ctx context.Context, roomID *uint, op models.LockOperationType, result models.LockOperationResult, ip string) {
	entry := models.LockOperation{
		RoomID:          roomID,
		OperationType:   op,
		OperationResult: result,
		IPAddress:       ip,
	}
	if err := s.DB.WithContext(context.WithoutCancel(ctx)).Create(&entry).Error; err != nil {
		log.Printf("⚠️ lock operation %s/%s not recorded: %v", op, result, err)
	}
}

// RecentLockOperations returns the newest operations for a room, newest first.
func (s *AuditService) RecentLockOperations(ctx context.Context, roomID uint, limit int) ([]models.LockOperation, error) {
	if limit <= 0 {
		limit = 50
	}
	var ops []models.LockOperation
	err := s.DB.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&ops).Error
	if err != nil {
		return nil, Transient("load lock operations", err)
	}
	return ops, nil
}
