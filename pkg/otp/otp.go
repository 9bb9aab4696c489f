package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Digits is the code length for every OTP purpose.
const Digits = 6

// RandomCode returns a zero-padded numeric code of the given length.
func RandomCode(digits int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil) // 10^digits
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n.Int64()), nil
}

// Generate returns a 6-digit code and its expiry as epoch milliseconds.
// Uniqueness across users or time is not guaranteed; a user holds at most one
// active code per purpose.
func Generate(ttl time.Duration) (string, int64, error) {
	code, err := RandomCode(Digits)
	if err != nil {
		return "", 0, err
	}
	return code, time.Now().Add(ttl).UnixMilli(), nil
}

// Expired reports whether a code with the given expiry is stale at now.
// The boundary instant itself counts as expired.
func Expired(expireAt int64, now time.Time) bool {
	return now.UnixMilli() >= expireAt
}
