package scoring

import "errors"

// Sentinel error kinds for scoring.
var (
	ErrInputOutOfDomain = errors.New("input out of domain")
	ErrInvalidFormula   = errors.New("invalid formula")
	ErrUnknownFormula   = errors.New("unknown formula")
)
