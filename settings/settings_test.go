package settings

import (
	"testing"
	"time"

	"github.com/bsv-blockchain/epochledger/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// check settings object is initialised
func TestInitialiseSettings(t *testing.T) {
	tSettings := NewSettings()

	assert.Equal(t, PolicyCount, tSettings.Epoch.Policy)
	assert.Equal(t, 20, tSettings.Epoch.MaxCandidates)
	assert.Equal(t, OversizeReject, tSettings.Epoch.OversizePolicy)
	assert.Equal(t, 4, tSettings.Epoch.ForkConcurrency)

	assert.True(t, tSettings.Validator.SigCacheEnabled)
	assert.Equal(t, 100_000, tSettings.Validator.SigCacheSize)
	assert.Equal(t, 600*time.Second, tSettings.Validator.SigCacheTTL)

	require.NoError(t, tSettings.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Settings)
	}{
		{"unknown policy", func(s *Settings) { s.Epoch.Policy = "fifo" }},
		{"zero candidates", func(s *Settings) { s.Epoch.MaxCandidates = 0 }},
		{"too many candidates", func(s *Settings) { s.Epoch.MaxCandidates = MaxExhaustiveCandidates + 1 }},
		{"unknown oversize policy", func(s *Settings) { s.Epoch.OversizePolicy = "truncate" }},
		{"no fork workers", func(s *Settings) { s.Epoch.ForkConcurrency = 0 }},
		{"empty sig cache", func(s *Settings) { s.Validator.SigCacheSize = 0 }},
		{"sig cache ttl", func(s *Settings) { s.Validator.SigCacheTTL = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tSettings := NewSettings()
			tt.mutate(tSettings)

			err := tSettings.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrConfiguration))
		})
	}

	t.Run("disabled cache ignores cache sizing", func(t *testing.T) {
		tSettings := NewSettings()
		tSettings.Validator.SigCacheEnabled = false
		tSettings.Validator.SigCacheSize = 0

		require.NoError(t, tSettings.Validate())
	})

	t.Run("upper bound is accepted", func(t *testing.T) {
		tSettings := NewSettings()
		tSettings.Epoch.MaxCandidates = MaxExhaustiveCandidates
		tSettings.Epoch.Policy = PolicyMaxFee
		tSettings.Epoch.OversizePolicy = OversizeGreedy

		require.NoError(t, tSettings.Validate())
	})
}
