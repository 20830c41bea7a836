package core

import (
	"errors"
	"fmt"
)

var (
	// ErrFinalizedPacket is returned when a packet is mutated after it has been finalized.
	ErrFinalizedPacket = errors.New("packet has been finalized and can no longer be modified")

	// ErrIllegalHopLimit is returned when a hop limit outside [MinHopLimit, MaxHopLimit] is set.
	ErrIllegalHopLimit = fmt.Errorf("hop limit must be between %d and %d", MinHopLimit, MaxHopLimit)

	// ErrInvalidArgument is returned when a required argument, such as an address, is missing or malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNegativeTimeout is returned when a timeout is set to a negative amount of milliseconds.
	ErrNegativeTimeout = errors.New("timeout cannot be negative")

	// ErrUnsupported is returned when the native layer does not provide a capability, such as a protocol directory.
	ErrUnsupported = errors.New("operation not supported by the native layer")

	// ErrTimeout is returned when a select-based timeout expires before the socket becomes ready.
	ErrTimeout = errors.New("i/o timeout")
)

// ConstantNotDefinedError is returned when a symbolic socket constant has no value on this platform.
type ConstantNotDefinedError struct {
	Name string
}

func (e *ConstantNotDefinedError) Error() string {
	return fmt.Sprintf("the specified constant, %s, is not natively defined", e.Name)
}

// NativeError is a failure reported by the native socket layer. Err is usually a system errno.
type NativeError struct {
	Op  string
	Err error
}

func (e *NativeError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NativeError) Unwrap() error {
	return e.Err
}

// invalidArgument wraps ErrInvalidArgument with the name of the offending parameter.
func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// IsTimeout reports whether err is a timeout, either ErrTimeout from a select-based wait or an error
// of the native layer that reports itself as a timeout, such as EAGAIN after SO_RCVTIMEO expired.
func IsTimeout(err error) bool {
	if errors.Is(err, ErrTimeout) {
		return true
	}

	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
