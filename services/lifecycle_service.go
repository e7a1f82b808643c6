package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"smart-hotel/models"
	"smart-hotel/services/notification"
	"smart-hotel/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LifecycleService owns every transition of a room and the bookings and
// check-ins that hang off it. Each operation runs in one transaction; audit
// records and notifications happen after it commits or rolls back.
type LifecycleService struct {
	DB       *gorm.DB
	Audit    *AuditService
	Notifier notification.Service
	Now      func() time.Time
}

func NewLifecycleService(db *gorm.DB, audit *AuditService, notifier notification.Service) *LifecycleService {
	if notifier == nil {
		notifier = notification.Nop{}
	}
	return &LifecycleService{DB: db, Audit: audit, Notifier: notifier, Now: time.Now}
}

type CheckInResult struct {
	GuestID     uint    `json:"guestId"`
	BookingID   uint    `json:"bookingId"`
	RoomNumber  string  `json:"roomNumber"`
	Nights      int     `json:"nights"`
	TotalAmount float64 `json:"totalAmount"`
	LockCode    string  `json:"lockCode"`
}

type CheckOutResult struct {
	GuestName    string    `json:"guestName"`
	RoomNumber   string    `json:"roomNumber"`
	CheckOutTime time.Time `json:"checkOutTime"`
	TotalAmount  float64   `json:"totalAmount"`
}

type LockVerifyResult struct {
	RoomNumber string            `json:"roomNumber"`
	Status     models.RoomStatus `json:"status"`
}

type LockResetResult struct {
	RoomNumber string `json:"roomNumber"`
	LockCode   string `json:"lockCode"`
}

var forUpdate = clause.Locking{Strength: "UPDATE"}

func (s *LifecycleService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// RegisterAndCheckIn upserts the guest, books the room and occupies it with
// the guest's chosen lock code.
func (s *LifecycleService) RegisterAndCheckIn(ctx context.Context, in RegisterInput, ip string) (*CheckInResult, error) {
	reg, err := ValidateRegistration(in)
	if err != nil {
		return nil, err
	}

	var (
		result CheckInResult
		roomID uint
		guest  string
	)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(forUpdate).First(&room, reg.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if room.Status != models.RoomFree {
			return ErrRoomUnavailable
		}

		g, err := upsertGuest(tx, reg)
		if err != nil {
			return err
		}

		nights, amount := StayCharge(reg.CheckIn, reg.CheckOut, room.Price)
		booking := models.Booking{
			RoomID:        room.ID,
			GuestID:       g.ID,
			CheckInDate:   datatypes.Date(reg.CheckIn),
			CheckOutDate:  datatypes.Date(reg.CheckOut),
			TotalAmount:   amount,
			Status:        models.BookingOccupied,
			PaymentStatus: models.PaymentPaid,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		checkIn := models.CheckIn{
			BookingID:     booking.ID,
			RoomID:        room.ID,
			GuestID:       g.ID,
			CheckInTime:   s.now(),
			SmartLockCode: reg.LockCode,
			Status:        models.CheckInActive,
		}
		if err := tx.Create(&checkIn).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", room.ID, models.RoomFree).
			Updates(map[string]interface{}{
				"status":          models.RoomOccupied,
				"smart_lock_code": reg.LockCode,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoomUnavailable
		}

		roomID = room.ID
		guest = g.Name
		result = CheckInResult{
			GuestID:     g.ID,
			BookingID:   booking.ID,
			RoomNumber:  room.RoomNumber,
			Nights:      nights,
			TotalAmount: amount,
			LockCode:    reg.LockCode,
		}
		return nil
	})
	if err != nil {
		return nil, classify("check-in", err, ErrRoomUnavailable)
	}

	log.Printf("✅ guest %s checked into room %s (booking %d)", utils.MaskIDCard(reg.IDCard), result.RoomNumber, result.BookingID)
	s.Audit.LogLockOperation(ctx, &roomID, models.LockSetCode, models.LockSuccess, ip)
	s.Audit.LogSystem(ctx, "guest_self_checkin",
		fmt.Sprintf("guest %s checked into room %s", guest, result.RoomNumber), models.UserGuest, ip)
	s.publishRoom(ctx, roomID)
	return &result, nil
}

// upsertGuest refreshes every contact field of an existing guest, or creates
// one. The row is locked so a concurrent registration under the same ID card
// cannot interleave.
func upsertGuest(tx *gorm.DB, reg *Registration) (models.Guest, error) {
	var birth *datatypes.Date
	if reg.BirthDate != nil {
		d := datatypes.Date(*reg.BirthDate)
		birth = &d
	}

	var guest models.Guest
	err := tx.Clauses(forUpdate).Where("id_card = ?", reg.IDCard).First(&guest).Error
	switch {
	case err == nil:
		err = tx.Model(&guest).Updates(map[string]interface{}{
			"name":       reg.Name,
			"phone":      reg.Phone,
			"email":      reg.Email,
			"gender":     models.Gender(reg.Gender),
			"birth_date": birth,
			"address":    reg.Address,
		}).Error
		if err != nil {
			return guest, classify("update guest", err, ErrGuestConflict)
		}
		guest.Name = reg.Name
		return guest, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		guest = models.Guest{
			Name:      reg.Name,
			IDCard:    reg.IDCard,
			Phone:     reg.Phone,
			Email:     reg.Email,
			Gender:    models.Gender(reg.Gender),
			BirthDate: birth,
			Address:   reg.Address,
		}
		if err := tx.Create(&guest).Error; err != nil {
			if isDuplicateKey(err) {
				return guest, withCause(ErrGuestConflict, err)
			}
			return guest, classify("create guest", err, ErrGuestConflict)
		}
		return guest, nil

	default:
		return guest, err
	}
}

// CheckOut ends the active stay in roomNumber when lockCode matches the code
// on the room exactly.
func (s *LifecycleService) CheckOut(ctx context.Context, roomNumber, lockCode, ip string) (*CheckOutResult, error) {
	roomNumber = strings.TrimSpace(roomNumber)
	if err := ValidateLockRequest(roomNumber, lockCode); err != nil {
		return nil, err
	}

	var (
		result     CheckOutResult
		roomID     uint
		rejectedAt *uint
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(forUpdate).Where("room_number = ?", roomNumber).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveStay
			}
			return err
		}

		var booking models.Booking
		err := tx.Clauses(forUpdate).
			Preload("Guest").
			Where("room_id = ? AND status = ?", room.ID, models.BookingOccupied).
			Order("id DESC").
			First(&booking).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveStay
			}
			return err
		}

		if room.SmartLockCode == nil || *room.SmartLockCode != lockCode {
			id := room.ID
			rejectedAt = &id
			return ErrInvalidLockCode
		}

		now := s.now()
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, models.BookingOccupied).
			Update("status", models.BookingCheckedOut)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoActiveStay
		}

		err = tx.Model(&models.CheckIn{}).
			Where("booking_id = ? AND status = ?", booking.ID, models.CheckInActive).
			Updates(map[string]interface{}{
				"status":         models.CheckInCheckedOut,
				"check_out_time": now,
			}).Error
		if err != nil {
			return err
		}

		res = tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", room.ID, models.RoomOccupied).
			Updates(map[string]interface{}{
				"status":          models.RoomFree,
				"smart_lock_code": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoActiveStay
		}

		roomID = room.ID
		result = CheckOutResult{
			RoomNumber:   room.RoomNumber,
			CheckOutTime: now,
			TotalAmount:  booking.TotalAmount,
		}
		if booking.Guest != nil {
			result.GuestName = booking.Guest.Name
		}
		return nil
	})
	if err != nil {
		// The failed attempt is written after rollback so it is committed on
		// its own and never waits on the room row this transaction held.
		if errors.Is(err, ErrInvalidLockCode) {
			log.Printf("❌ check-out rejected for room %s: wrong lock code", roomNumber)
			s.Audit.LogLockOperation(ctx, rejectedAt, models.LockCheckOut, models.LockFailure, ip)
		}
		return nil, classify("check-out", err, nil)
	}

	log.Printf("✅ room %s checked out", result.RoomNumber)
	s.Audit.LogLockOperation(ctx, &roomID, models.LockCheckOut, models.LockSuccess, ip)
	s.Audit.LogSystem(ctx, "guest_self_checkout",
		fmt.Sprintf("guest %s checked out of room %s", result.GuestName, result.RoomNumber), models.UserGuest, ip)
	s.publishRoom(ctx, roomID)
	return &result, nil
}

// CancelBooking cancels a reservation that has not checked in yet.
func (s *LifecycleService) CancelBooking(ctx context.Context, bookingID uint, ip string) error {
	if bookingID == 0 {
		return Validation("invalid booking id")
	}

	var roomID uint
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(forUpdate).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if !booking.Status.CanTransitionTo(models.BookingCancelled) {
			return ErrInvalidState
		}

		var room models.Room
		if err := tx.Clauses(forUpdate).First(&room, booking.RoomID).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, models.BookingBooked).
			Update("status", models.BookingCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidState
		}

		// the room goes back to the pool only if nothing else holds it
		var others int64
		err := tx.Model(&models.Booking{}).
			Where("room_id = ? AND id <> ? AND status IN ?", room.ID, booking.ID,
				[]models.BookingStatus{models.BookingBooked, models.BookingOccupied}).
			Count(&others).Error
		if err != nil {
			return err
		}
		if others == 0 && room.Status == models.RoomBooked {
			if err := tx.Model(&models.Room{}).
				Where("id = ? AND status = ?", room.ID, models.RoomBooked).
				Update("status", models.RoomFree).Error; err != nil {
				return err
			}
		}

		roomID = room.ID
		return nil
	})
	if err != nil {
		return classify("cancel booking", err, ErrInvalidState)
	}

	log.Printf("✅ booking %d cancelled", bookingID)
	s.Audit.LogSystem(ctx, "booking_cancelled", fmt.Sprintf("booking %d cancelled", bookingID), models.UserGuest, ip)
	s.publishRoom(ctx, roomID)
	return nil
}

// VerifyLockCode checks a code against an occupied room. It changes no state
// but every outcome is recorded in lock_operations.
func (s *LifecycleService) VerifyLockCode(ctx context.Context, roomNumber, lockCode, ip string) (*LockVerifyResult, error) {
	roomNumber = strings.TrimSpace(roomNumber)
	if err := ValidateLockRequest(roomNumber, lockCode); err != nil {
		return nil, err
	}

	var room models.Room
	if err := s.DB.WithContext(ctx).Where("room_number = ?", roomNumber).First(&room).Error; err != nil {
		s.Audit.LogLockOperation(ctx, nil, models.LockVerifyCode, models.LockFailure, ip)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, Transient("verify lock code", err)
	}

	if room.Status != models.RoomOccupied {
		s.Audit.LogLockOperation(ctx, &room.ID, models.LockVerifyCode, models.LockFailure, ip)
		return nil, ErrRoomNotOccupied
	}
	if room.SmartLockCode == nil || *room.SmartLockCode != lockCode {
		s.Audit.LogLockOperation(ctx, &room.ID, models.LockVerifyCode, models.LockFailure, ip)
		return nil, ErrInvalidLockCode
	}

	s.Audit.LogLockOperation(ctx, &room.ID, models.LockVerifyCode, models.LockSuccess, ip)
	return &LockVerifyResult{RoomNumber: room.RoomNumber, Status: room.Status}, nil
}

// ResetLockCode replaces the code of an occupied room with a fresh random one,
// on both the room and its active check-in.
func (s *LifecycleService) ResetLockCode(ctx context.Context, roomNumber, ip string) (*LockResetResult, error) {
	roomNumber = strings.TrimSpace(roomNumber)
	if roomNumber == "" {
		return nil, Validation("please provide room number")
	}

	code, err := utils.GenerateLockCode(utils.LockCodeLength)
	if err != nil {
		return nil, Transient("generate lock code", err)
	}

	var roomID *uint
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(forUpdate).Where("room_number = ?", roomNumber).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		id := room.ID
		roomID = &id
		if room.Status != models.RoomOccupied {
			return ErrRoomNotOccupied
		}

		res := tx.Model(&models.CheckIn{}).
			Where("room_id = ? AND status = ?", room.ID, models.CheckInActive).
			Update("smart_lock_code", code)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoActiveStay
		}

		res = tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", room.ID, models.RoomOccupied).
			Update("smart_lock_code", code)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoomNotOccupied
		}
		return nil
	})
	if err != nil {
		s.Audit.LogLockOperation(ctx, roomID, models.LockResetCode, models.LockFailure, ip)
		return nil, classify("reset lock code", err, nil)
	}

	log.Printf("🔑 lock code reset for room %s", roomNumber)
	s.Audit.LogLockOperation(ctx, roomID, models.LockResetCode, models.LockSuccess, ip)
	s.Audit.LogSystem(ctx, "lock_code_reset", fmt.Sprintf("lock code reset for room %s", roomNumber), models.UserAdmin, ip)
	s.publishRoom(ctx, *roomID)
	return &LockResetResult{RoomNumber: roomNumber, LockCode: code}, nil
}

// SetLockCode replaces the code of an occupied room with one chosen by staff,
// on both the room and its active check-in. Rooms that are not occupied never
// carry a code, so they are rejected.
func (s *LifecycleService) SetLockCode(ctx context.Context, roomID uint, lockCode, ip string) (*LockResetResult, error) {
	if roomID == 0 {
		return nil, Validation("invalid room id")
	}
	if !utils.IsValidLockCode(lockCode) {
		return nil, Validation(fmt.Sprintf("smart lock code must be exactly %d digits", utils.LockCodeLength))
	}

	var (
		known      *uint
		roomNumber string
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(forUpdate).First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		known = &room.ID
		roomNumber = room.RoomNumber
		if room.Status != models.RoomOccupied {
			return ErrRoomNotOccupied
		}

		var active models.CheckIn
		err := tx.Clauses(forUpdate).
			Where("room_id = ? AND status = ?", room.ID, models.CheckInActive).
			First(&active).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveStay
			}
			return err
		}
		if err := tx.Model(&active).Update("smart_lock_code", lockCode).Error; err != nil {
			return err
		}

		return tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", room.ID, models.RoomOccupied).
			Update("smart_lock_code", lockCode).Error
	})
	if err != nil {
		s.Audit.LogLockOperation(ctx, known, models.LockSetCode, models.LockFailure, ip)
		return nil, classify("set lock code", err, nil)
	}

	log.Printf("🔑 lock code set for room %s", roomNumber)
	s.Audit.LogLockOperation(ctx, known, models.LockSetCode, models.LockSuccess, ip)
	s.Audit.LogSystem(ctx, "lock_code_set", fmt.Sprintf("lock code set for room %s", roomNumber), models.UserAdmin, ip)
	s.publishRoom(ctx, roomID)
	return &LockResetResult{RoomNumber: roomNumber, LockCode: lockCode}, nil
}

// UpdateRoomStatus is the staff override between Free, Booked and
// Maintenance. Occupancy is only entered and left through check-in and
// check-out.
func (s *LifecycleService) UpdateRoomStatus(ctx context.Context, roomID uint, status models.RoomStatus, ip string) (*models.Room, error) {
	if roomID == 0 {
		return nil, Validation("invalid room id")
	}
	if !status.Valid() {
		return nil, Validation("invalid room status")
	}
	if !ManualRoomStatus(status) {
		return nil, ErrInvalidRoomStatus
	}

	var (
		previous models.RoomStatus
		updated  models.Room
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(forUpdate).First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if room.Status == models.RoomOccupied {
			return ErrInvalidRoomStatus
		}
		previous = room.Status
		updated = room
		if room.Status == status {
			return nil
		}

		if status == models.RoomFree {
			var active int64
			err := tx.Model(&models.Booking{}).
				Where("room_id = ? AND status IN ?", room.ID,
					[]models.BookingStatus{models.BookingBooked, models.BookingOccupied}).
				Count(&active).Error
			if err != nil {
				return err
			}
			if active > 0 {
				return ErrInvalidRoomStatus
			}
		}

		res := tx.Model(&models.Room{}).
			Where("id = ? AND status = ?", room.ID, room.Status).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidRoomStatus
		}
		updated.Status = status
		return nil
	})
	if err != nil {
		return nil, classify("update room status", err, ErrInvalidRoomStatus)
	}

	s.Audit.LogSystem(ctx, "room_status_updated",
		fmt.Sprintf("room %d status %s -> %s", roomID, previous, status), models.UserAdmin, ip)
	if room := s.publishRoom(ctx, roomID); room != nil {
		return room, nil
	}
	// reload failed after commit; the row as written is still the answer
	return &updated, nil
}

// publishRoom reloads the committed row and broadcasts it.
func (s *LifecycleService) publishRoom(ctx context.Context, roomID uint) *models.Room {
	ctx = context.WithoutCancel(ctx)
	var room models.Room
	if err := s.DB.WithContext(ctx).First(&room, roomID).Error; err != nil {
		log.Printf("⚠️ reload room %d for notification: %v", roomID, err)
		return nil
	}
	notification.Notify(ctx, s.Notifier, notification.RoomStatusChanged(room))
	return &room
}
