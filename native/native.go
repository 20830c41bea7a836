// Package native implements the operating system side of core.Native: raw socket creation, socket
// options, raw I/O and the lookup of symbolic socket constants.
package native

import (
	"errors"

	"github.com/mikaelmello/rawsock/core"
)

var (
	// ErrNotImplemented is returned when certain functionality is not yet
	// implemented for the host operating system.
	ErrNotImplemented = errors.New("not implemented")
)

// DefaultProtocolsPath is the protocol database read by the protocol directory.
const DefaultProtocolsPath = "/etc/protocols"

// wrap reports err as a native failure of op, nil stays nil.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &core.NativeError{Op: op, Err: err}
}

// constantTable resolves names from a fixed table.
type constantTable map[string]int

func (t constantTable) Constant(name string) (int, error) {
	v, ok := t[name]
	if !ok {
		return 0, &core.ConstantNotDefinedError{Name: name}
	}
	return v, nil
}
