package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrServe      = errors.New("swagger serve failed")
	ErrBadRequest = errors.New("bad request")
	ErrNotLoaded  = errors.New("no dataset loaded")
)

// NewKind tags a sentinel with the failing operation.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// Wrap tags an arbitrary error with the failing operation.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// WrapKind tags a sentinel and keeps the underlying cause in the chain.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
