package api

import (
	"errors"
	"fmt"
)

// ErrBadRequest marks malformed or incomplete request bodies.
var ErrBadRequest = errors.New("bad request")

// NewKind tags kind with the operation that produced it.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags err with op and kind so callers can match either.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
