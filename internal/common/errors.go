// Package common defines shared constants and sentinel errors used across
// CallSecure components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Storage bootstrap errors.
	ErrUnsupportedDriver = errors.New("unsupported storage driver")

	// Snapshot import errors.
	ErrInvalidSnapshot = errors.New("invalid storage snapshot")
)
