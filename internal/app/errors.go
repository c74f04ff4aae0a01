package service

import (
	"errors"
)

// Sentinel errors returned by Service and Session.
var (
	ErrNoScore        = errors.New("no score calculated")
	ErrNoCategory     = errors.New("no sponsorship category selected")
	ErrUnknownProgram = errors.New("program not offered under category")
)
