package settings

import (
	"time"

	"github.com/bsv-blockchain/epochledger/errors"
)

func NewSettings() *Settings {
	sigCacheTTLSeconds := getInt("validator_sig_cache_ttl_seconds", 600)

	return &Settings{
		ServiceName: getString("SERVICE_NAME", "epochledger"),
		Logger: LoggerSettings{
			LogLevel:   getString("logLevel", "INFO"),
			LoggerType: getString("logger_type", "zerolog"),
			Pretty:     getBool("PRETTY_LOGS", true),
		},
		Epoch: EpochSettings{
			Policy:          getString("epoch_policy", PolicyCount),
			MaxCandidates:   getInt("epoch_maxfee_max_candidates", DefaultMaxCandidates),
			OversizePolicy:  getString("epoch_maxfee_oversize_policy", OversizeReject),
			ForkConcurrency: getInt("epoch_fork_concurrency", 4),
		},
		Validator: ValidatorSettings{
			SigCacheEnabled: getBool("validator_sig_cache_enabled", true),
			SigCacheSize:    getInt("validator_sig_cache_size", 100_000),
			SigCacheTTL:     time.Duration(sigCacheTTLSeconds) * time.Second,
		},
	}
}

// Validate reports the first misconfigured value as an ERR_CONFIGURATION error.
func (s *Settings) Validate() error {
	switch s.Epoch.Policy {
	case PolicyCount, PolicyMaxFee:
	default:
		return errors.NewConfigurationError("unknown epoch_policy %q, expected %q or %q", s.Epoch.Policy, PolicyCount, PolicyMaxFee)
	}

	if s.Epoch.MaxCandidates < 1 || s.Epoch.MaxCandidates > MaxExhaustiveCandidates {
		return errors.NewConfigurationError("epoch_maxfee_max_candidates must be between 1 and %d, got %d", MaxExhaustiveCandidates, s.Epoch.MaxCandidates)
	}

	switch s.Epoch.OversizePolicy {
	case OversizeReject, OversizeGreedy:
	default:
		return errors.NewConfigurationError("unknown epoch_maxfee_oversize_policy %q, expected %q or %q", s.Epoch.OversizePolicy, OversizeReject, OversizeGreedy)
	}

	if s.Epoch.ForkConcurrency < 1 {
		return errors.NewConfigurationError("epoch_fork_concurrency must be positive, got %d", s.Epoch.ForkConcurrency)
	}

	if s.Validator.SigCacheEnabled {
		if s.Validator.SigCacheSize < 1 {
			return errors.NewConfigurationError("validator_sig_cache_size must be positive, got %d", s.Validator.SigCacheSize)
		}

		if s.Validator.SigCacheTTL <= 0 {
			return errors.NewConfigurationError("validator_sig_cache_ttl_seconds must be positive")
		}
	}

	return nil
}
