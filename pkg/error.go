package pkg

import "errors"

// ucconfig configuration and fifo errors.
var (
	// ErrFull indicates the fifo is full.
	ErrFull = errors.New("fifo full")

	// ErrEmpty indicates the fifo is empty.
	ErrEmpty = errors.New("fifo empty")

	// ErrNonPowerOfTwo indicates a fifo capacity that is not a power of two.
	ErrNonPowerOfTwo = errors.New("fifo capacity not a power of two")

	// ErrNoMode indicates an unrecognized fifo drain mode.
	ErrNoMode = errors.New("fifo mode does not exist")

	// ErrInvalidParameter indicates an invalid or missing setup parameter.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNotConfigured indicates an operation was attempted before Setup.
	ErrNotConfigured = errors.New("not configured")
)
