package models

// CircuitBreakerState is the state of a circuit breaker. The numeric value
// is exported as the circuit_breaker_state gauge.
type CircuitBreakerState int

const (
	CircuitStateClosed CircuitBreakerState = iota
	CircuitStateOpen
	CircuitStateHalfOpen
)

func (s CircuitBreakerState) String() string {
	switch s {
	case CircuitStateClosed:
		return "closed"
	case CircuitStateOpen:
		return "open"
	case CircuitStateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}
