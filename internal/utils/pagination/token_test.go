package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Test case 1: Standard values
	createdAt := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)
	token := EncodeToken(createdAt, "entry-42")
	assert.NotEmpty(t, token, "Token should not be empty")

	cur, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, cur.CreatedAt, "Created at time should match after decode")
	assert.Equal(t, "entry-42", cur.ID)

	// Test case 2: Non-UTC input is normalised
	loc := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2024, 1, 1, 10, 0, 0, 0, loc)
	cur, err = DecodeToken(EncodeToken(local, "x"))
	assert.NoError(t, err)
	assert.True(t, local.Equal(cur.CreatedAt))

	// Test case 3: ids containing the separator survive
	cur, err = DecodeToken(EncodeToken(createdAt, "a|b"))
	assert.NoError(t, err)
	assert.Equal(t, "a|b", cur.ID)
}

func TestDecodeTokenErrors(t *testing.T) {
	testCases := []struct {
		name  string
		token string
	}{
		{"Invalid base64", "not-valid-base64!"},
		{"Missing separator", "MjAyMy0wNS0xNVQwMDowMDowMFo"},
		{"Invalid date format", base64.RawURLEncoding.EncodeToString([]byte("not-a-date|id"))},
		{"Empty token", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeToken(tc.token)
			assert.Error(t, err, "Expected error for invalid token")
		})
	}
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, ClampLimit(0, 20, 100))
	assert.Equal(t, 20, ClampLimit(-5, 20, 100))
	assert.Equal(t, 7, ClampLimit(7, 20, 100))
	assert.Equal(t, 100, ClampLimit(1000, 20, 100))
}
