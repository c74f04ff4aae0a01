package probe

import "errors"

// Sentinel errors.
var (
	ErrUnhealthy = errors.New("service unhealthy")
	ErrMismatch  = errors.New("server verdicts differ from local evaluation")
)
