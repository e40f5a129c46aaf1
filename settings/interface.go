package settings

import (
	"time"
)

const (
	PolicyCount  = "count"
	PolicyMaxFee = "maxfee"

	OversizeReject = "reject"
	OversizeGreedy = "greedy"

	// MaxExhaustiveCandidates caps the exhaustive search so subset masks fit in a uint64 with room to spare.
	MaxExhaustiveCandidates = 62

	// DefaultMaxCandidates is the exhaustive search limit when none is configured.
	DefaultMaxCandidates = 20
)

type LoggerSettings struct {
	LogLevel   string
	LoggerType string
	Pretty     bool
}

type EpochSettings struct {
	// Policy selects the handler, PolicyCount or PolicyMaxFee.
	Policy string
	// MaxCandidates bounds the number of feasible candidates handed to the exhaustive search.
	MaxCandidates int
	// OversizePolicy decides what happens above MaxCandidates, OversizeReject or OversizeGreedy.
	OversizePolicy  string
	ForkConcurrency int
}

type ValidatorSettings struct {
	SigCacheEnabled bool
	SigCacheSize    int
	SigCacheTTL     time.Duration
}

type Settings struct {
	ServiceName string
	Logger      LoggerSettings
	Epoch       EpochSettings
	Validator   ValidatorSettings
}
