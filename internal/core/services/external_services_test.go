package services_test

import (
	"context"
	"regexp"
	"testing"

	portssvc "github.com/ganges/ganges_backend/internal/core/ports/services"
	"github.com/ganges/ganges_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingNumberFormat(t *testing.T) {
	gen := services.NewTrackingNumberGenerator()
	pattern := regexp.MustCompile(`^GNG[0-9A-HJKMNP-TV-Z]{10}$`)

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		tn, err := gen.Next()
		require.NoError(t, err)
		assert.Regexp(t, pattern, tn)
		seen[tn] = true
	}
	assert.Len(t, seen, 500)
}

func TestNoopGateway(t *testing.T) {
	ref, err := services.NoopGateway{}.Charge(context.Background(), portssvc.ChargeRequest{AccountID: "acc-1", EntryID: "e-1", Amount: dec("10")})
	require.NoError(t, err)
	assert.Equal(t, "noop-e-1", ref)
}
