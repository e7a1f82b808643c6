package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLockCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateLockCode(LockCodeLength)
		require.NoError(t, err)
		assert.Len(t, code, LockCodeLength)
		assert.True(t, IsValidLockCode(code), code)
	}

	_, err := GenerateLockCode(0)
	assert.Error(t, err)
}

func TestIsValidLockCode(t *testing.T) {
	assert.True(t, IsValidLockCode("123456"))
	assert.True(t, IsValidLockCode("000000"))
	assert.False(t, IsValidLockCode("12345"))
	assert.False(t, IsValidLockCode("1234567"))
	assert.False(t, IsValidLockCode("12a456"))
	assert.False(t, IsValidLockCode(""))
}

func TestParseStayDate(t *testing.T) {
	d, err := ParseStayDate("2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local), d)

	d, err = ParseStayDate("2024-01-03T22:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local), d)

	// 01:00 at +08:00 is still the 2nd in UTC
	d, err = ParseStayDate("2024-01-03T01:00:00+08:00")
	require.NoError(t, err)
	assert.Equal(t, 2, d.Day())

	_, err = ParseStayDate("03/01/2024")
	assert.Error(t, err)
	_, err = ParseStayDate("  ")
	assert.Error(t, err)
}

func TestCalendarDays(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	assert.Equal(t, 2, CalendarDays(a, a.AddDate(0, 0, 2)))
	assert.Equal(t, 0, CalendarDays(a, a))
	assert.Equal(t, 31, CalendarDays(a, time.Date(2024, 2, 1, 23, 0, 0, 0, time.Local)))
	assert.Equal(t, -1, CalendarDays(a, a.AddDate(0, 0, -1)))
}

func TestMaskIDCard(t *testing.T) {
	assert.Equal(t, "110101********123X", MaskIDCard("11010119900307123X"))
	assert.Equal(t, "*****", MaskIDCard("12345"))
	assert.Equal(t, "", MaskIDCard(""))
}
