package services

import (
	"errors"
	"fmt"

	mysql "github.com/go-sql-driver/mysql"
)

// ErrorKind classifies failures by who is at fault and whether state changed.
type ErrorKind string

const (
	KindValidation ErrorKind = "VALIDATION"
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindConflict   ErrorKind = "CONFLICT"
	KindAuth       ErrorKind = "AUTH"
	KindTransient  ErrorKind = "TRANSIENT"
)

// AppError carries a stable code, a message that is safe to show the caller,
// and optionally the underlying cause for server-side logs.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches on Code so that a wrapped or re-created AppError still satisfies
// errors.Is against the sentinels below.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func NewAppError(kind ErrorKind, code, message string, err error) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Err: err}
}

var (
	ErrRoomNotFound      = NewAppError(KindNotFound, "ROOM_NOT_FOUND", "room not found", nil)
	ErrRoomUnavailable   = NewAppError(KindConflict, "ROOM_UNAVAILABLE", "room is not available", nil)
	ErrRoomNotOccupied   = NewAppError(KindConflict, "ROOM_NOT_OCCUPIED", "room is not occupied", nil)
	ErrNoActiveStay      = NewAppError(KindNotFound, "NO_ACTIVE_STAY", "no active stay found for this room, please check the room number", nil)
	ErrInvalidLockCode   = NewAppError(KindAuth, "INVALID_LOCK_CODE", "invalid smart lock code", nil)
	ErrBookingNotFound   = NewAppError(KindNotFound, "BOOKING_NOT_FOUND", "booking not found", nil)
	ErrInvalidState      = NewAppError(KindConflict, "INVALID_STATE", "only bookings in Booked status can be cancelled", nil)
	ErrGuestNotFound     = NewAppError(KindNotFound, "GUEST_NOT_FOUND", "guest not found", nil)
	ErrGuestConflict     = NewAppError(KindConflict, "GUEST_CONFLICT", "guest record was modified concurrently, please retry", nil)
	ErrInvalidRoomStatus = NewAppError(KindConflict, "INVALID_ROOM_STATUS", "room status transition not allowed", nil)
)

// withCause copies a sentinel and attaches the underlying error.
func withCause(sentinel *AppError, err error) *AppError {
	return NewAppError(sentinel.Kind, sentinel.Code, sentinel.Message, err)
}

// Validation builds a caller-fault error with the given message.
func Validation(message string) *AppError {
	return NewAppError(KindValidation, "VALIDATION_ERROR", message, nil)
}

// Transient wraps an infrastructure failure. The message is generic; the
// cause stays in Err for logging.
func Transient(op string, err error) *AppError {
	return NewAppError(KindTransient, "TRANSIENT_ERROR", op+" failed", err)
}

// KindOf returns the kind of err, treating anything unclassified as transient.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindTransient
}

// AsAppError returns err as an *AppError, wrapping unclassified errors as
// transient.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Transient("operation", err)
}

const (
	mysqlDuplicateEntry = 1062
	mysqlLockWait       = 1205
	mysqlDeadlock       = 1213
)

func mysqlErrorNumber(err error) uint16 {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number
	}
	return 0
}

func isDuplicateKey(err error) bool {
	return mysqlErrorNumber(err) == mysqlDuplicateEntry
}

// classify keeps AppErrors as they are and turns storage errors into
// Transient. A deadlock or lock-wait timeout means another transaction won
// the same row, which is a conflict rather than a crash.
func classify(op string, err error, onLockConflict *AppError) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	switch mysqlErrorNumber(err) {
	case mysqlLockWait, mysqlDeadlock:
		if onLockConflict != nil {
			return withCause(onLockConflict, err)
		}
	}
	return Transient(op, err)
}
