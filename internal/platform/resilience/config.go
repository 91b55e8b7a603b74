package resilience

import "time"

// CircuitBreakerConfig carries the tuning knobs for a breaker. Zero values
// are replaced with defaults by the consumer so an empty struct is usable.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}
