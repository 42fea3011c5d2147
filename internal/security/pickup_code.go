package security

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
)

// pickupCodeAlphabet excludes characters that read ambiguously when exchanged
// in person (0/O, 1/I/L).
const pickupCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const pickupCodeLength = 6

// GeneratePickupCode returns a short high-entropy code the renter presents to
// the owner at pickup. 31^6 candidates (~887M) from crypto/rand.
func GeneratePickupCode() (string, error) {
	buf := make([]byte, pickupCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate pickup code: %w", err)
	}
	code := make([]byte, pickupCodeLength)
	for i, b := range buf {
		code[i] = pickupCodeAlphabet[int(b)%len(pickupCodeAlphabet)]
	}
	return string(code), nil
}

// PickupCodeMatches compares a supplied code against the stored one in
// constant time.
func PickupCodeMatches(stored, supplied string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
