package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

//
// ===========================================================
//  LOCK CODES
// ===========================================================
//

// LockCodeLength is the number of characters in a smart lock code.
const LockCodeLength = 6

const lockCodeCharset = "0123456789"

var lockCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// GenerateLockCode returns n characters from the lock keypad alphabet.
// crypto/rand + rand.Int (math/big) avoids modulo bias.
func GenerateLockCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(lockCodeCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(lockCodeCharset[num.Int64()])
	}
	return sb.String(), nil
}

// IsValidLockCode checks the keypad format: exactly six digits.
func IsValidLockCode(code string) bool {
	return lockCodePattern.MatchString(code)
}

//
// ===========================================================
//  DATES
// ===========================================================
//

// ParseStayDate accepts "2006-01-02" or RFC3339 and returns midnight of that
// calendar date in the local zone. RFC3339 inputs take the UTC calendar date.
func ParseStayDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", raw)
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// CalendarDays counts whole calendar days from a to b, ignoring zone offsets
// and DST shifts.
func CalendarDays(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

//
// ===========================================================
//  MASKING
// ===========================================================
//

// MaskIDCard keeps the first 6 and last 4 characters, e.g. "110101********1234".
func MaskIDCard(id string) string {
	id = strings.TrimSpace(id)
	if len(id) <= 10 {
		return strings.Repeat("*", len(id))
	}
	return id[:6] + strings.Repeat("*", len(id)-10) + id[len(id)-4:]
}
