package utils

import (
	"crypto/rand"
	"fmt"
)

// crockford is Crockford's base32 alphabet: no I, L, O or U, so codes survive
// being read aloud or copied by hand.
const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// GenerateSecureCode returns length characters drawn uniformly from the
// Crockford base32 alphabet using crypto/rand.
func GenerateSecureCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	out := make([]byte, length)
	for i, v := range b {
		// 256 is a multiple of 32, so the low five bits are uniform.
		out[i] = crockford[v&0x1f]
	}
	return string(out), nil
}
