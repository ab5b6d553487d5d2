package engine

import "errors"

// Sentinel errors for the simulation engine. All of these are fatal: they
// abort the execution and the caller records the message on the failed
// simulation. The engine never retries.
var (
	ErrUnknownScenarioType = errors.New("unknown scenario type")
	ErrMissingConfig       = errors.New("missing required calculation configuration")
	ErrInvalidParameter    = errors.New("invalid parameter value")
)
