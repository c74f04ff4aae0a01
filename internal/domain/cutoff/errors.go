package cutoff

import "errors"

// Sentinel error kinds for the cutoff registry.
var (
	ErrCutoffNotFound   = errors.New("cutoff not found")
	ErrUnknownCategory  = errors.New("unknown sponsorship category")
	ErrDuplicateProgram = errors.New("duplicate program")
)
