package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_IsMatchesByCode(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("wrapped: %w", withCause(ErrRoomUnavailable, cause))

	assert.True(t, errors.Is(err, ErrRoomUnavailable))
	assert.False(t, errors.Is(err, ErrRoomNotFound))
	assert.True(t, errors.Is(err, cause), "cause stays reachable")
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify("op", nil, nil))

	// business errors pass through untouched
	assert.Same(t, ErrInvalidLockCode, classify("op", ErrInvalidLockCode, nil))

	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}
	err := classify("check-in", deadlock, ErrRoomUnavailable)
	assert.True(t, errors.Is(err, ErrRoomUnavailable))
	assert.True(t, errors.Is(err, deadlock))

	lockWait := &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}
	err = classify("check-out", lockWait, nil)
	assert.Equal(t, KindTransient, KindOf(err))

	err = classify("check-out", context.DeadlineExceeded, ErrRoomUnavailable)
	appErr := AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, KindTransient, appErr.Kind)
	assert.Equal(t, "check-out failed", appErr.Message)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestIsDuplicateKey(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	assert.True(t, isDuplicateKey(dup))
	assert.False(t, isDuplicateKey(errors.New("Duplicate entry")))
}

func TestAsAppError(t *testing.T) {
	assert.Nil(t, AsAppError(nil))
	assert.Same(t, ErrRoomNotFound, AsAppError(ErrRoomNotFound))

	wrapped := AsAppError(errors.New("connection refused"))
	assert.Equal(t, KindTransient, wrapped.Kind)
	assert.Equal(t, "TRANSIENT_ERROR", wrapped.Code)
}
