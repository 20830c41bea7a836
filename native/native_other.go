//go:build !linux

package native

import (
	"net"

	"github.com/mikaelmello/rawsock/core"
)

// Unsupported is the capability of platforms without a raw socket implementation. Every socket
// call fails with ErrNotImplemented and no constant is defined.
type Unsupported struct {
	constantTable
	*ProtocolFile
}

// New returns the native capability of the host operating system.
func New() *Unsupported {
	return &Unsupported{
		constantTable: constantTable{},
		ProtocolFile:  NewProtocolFile(DefaultProtocolsPath),
	}
}

func (u *Unsupported) Open(family, protocol int) (int, error) {
	return -1, wrap("socket", ErrNotImplemented)
}

func (u *Unsupported) Close(handle int) error {
	return wrap("close", ErrNotImplemented)
}

func (u *Unsupported) SetOption(handle, level, option, value int) error {
	return wrap("setsockopt", ErrNotImplemented)
}

func (u *Unsupported) GetOption(handle, level, option int) (int, error) {
	return -1, wrap("getsockopt", ErrNotImplemented)
}

func (u *Unsupported) SetTimeout(handle, option int, timeout core.TimeoutValue) error {
	return wrap("setsockopt", ErrNotImplemented)
}

func (u *Unsupported) GetTimeout(handle, option int) (core.TimeoutValue, error) {
	return core.TimeoutValue{}, wrap("getsockopt", ErrNotImplemented)
}

func (u *Unsupported) SendTo(handle int, data []byte, addr net.IP) (int, error) {
	return 0, wrap("sendto", ErrNotImplemented)
}

func (u *Unsupported) RecvFrom(handle int, buf []byte) (int, net.IP, error) {
	return 0, nil, wrap("recvfrom", ErrNotImplemented)
}

func (u *Unsupported) WaitReadable(handle int, timeout core.TimeoutValue) (bool, error) {
	return false, wrap("poll", ErrNotImplemented)
}

func (u *Unsupported) WaitWritable(handle int, timeout core.TimeoutValue) (bool, error) {
	return false, wrap("poll", ErrNotImplemented)
}
