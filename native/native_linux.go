//go:build linux

package native

import (
	"net"

	"github.com/mikaelmello/rawsock/core"
	"golang.org/x/sys/unix"
)

// Linux is the Linux raw socket capability.
type Linux struct {
	constantTable
	*ProtocolFile
}

// New returns the native capability of the host operating system.
func New() *Linux {
	return &Linux{
		constantTable: constants,
		ProtocolFile:  NewProtocolFile(DefaultProtocolsPath),
	}
}

// Open creates a raw socket of the given family for protocol.
func (l *Linux) Open(family, protocol int) (int, error) {
	fd, err := unix.Socket(family, unix.SOCK_RAW|unix.SOCK_CLOEXEC, protocol)
	if err != nil {
		return -1, wrap("socket", err)
	}
	return fd, nil
}

func (l *Linux) Close(handle int) error {
	return wrap("close", unix.Close(handle))
}

func (l *Linux) SetOption(handle, level, option, value int) error {
	return wrap("setsockopt", unix.SetsockoptInt(handle, level, option, value))
}

func (l *Linux) GetOption(handle, level, option int) (int, error) {
	v, err := unix.GetsockoptInt(handle, level, option)
	if err != nil {
		return -1, wrap("getsockopt", err)
	}
	return v, nil
}

// SetTimeout sets a timeval option at the socket level.
func (l *Linux) SetTimeout(handle, option int, timeout core.TimeoutValue) error {
	tv := unix.NsecToTimeval(timeout.Duration().Nanoseconds())
	return wrap("setsockopt", unix.SetsockoptTimeval(handle, unix.SOL_SOCKET, option, &tv))
}

// GetTimeout reads a timeval option at the socket level.
func (l *Linux) GetTimeout(handle, option int) (core.TimeoutValue, error) {
	tv, err := unix.GetsockoptTimeval(handle, unix.SOL_SOCKET, option)
	if err != nil {
		return core.TimeoutValue{}, wrap("getsockopt", err)
	}
	return core.TimeoutFromTimeval(int64(tv.Sec), int64(tv.Usec)), nil
}

func (l *Linux) SendTo(handle int, data []byte, addr net.IP) (int, error) {
	sa, err := sockaddr(addr)
	if err != nil {
		return 0, err
	}
	if err := unix.Sendto(handle, data, 0, sa); err != nil {
		return 0, wrap("sendto", err)
	}
	return len(data), nil
}

func (l *Linux) RecvFrom(handle int, buf []byte) (int, net.IP, error) {
	n, from, err := unix.Recvfrom(handle, buf, 0)
	if err != nil {
		return 0, nil, wrap("recvfrom", err)
	}
	return n, sockaddrIP(from), nil
}

func (l *Linux) WaitReadable(handle int, timeout core.TimeoutValue) (bool, error) {
	return poll(handle, unix.POLLIN, timeout)
}

func (l *Linux) WaitWritable(handle int, timeout core.TimeoutValue) (bool, error) {
	return poll(handle, unix.POLLOUT, timeout)
}

// poll waits for events on handle for at most timeout.
func poll(handle int, events int16, timeout core.TimeoutValue) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(handle), Events: events}}
	n, err := unix.Poll(fds, timeout.InMilliseconds())
	if err != nil {
		return false, wrap("poll", err)
	}
	if n > 0 && fds[0].Revents&unix.POLLNVAL != 0 {
		return false, wrap("poll", unix.EBADF)
	}
	return n > 0, nil
}

// sockaddr converts an IP address into a raw socket address, raw sockets have no port.
func sockaddr(ip net.IP) (unix.Sockaddr, error) {
	if ip4 := ip.To4(); ip4 != nil {
		sa := &unix.SockaddrInet4{}
		copy(sa.Addr[:], ip4)
		return sa, nil
	}
	if ip6 := ip.To16(); ip6 != nil {
		sa := &unix.SockaddrInet6{}
		copy(sa.Addr[:], ip6)
		return sa, nil
	}
	return nil, wrap("sendto", unix.EAFNOSUPPORT)
}

func sockaddrIP(sa unix.Sockaddr) net.IP {
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		return net.IPv4(sa.Addr[0], sa.Addr[1], sa.Addr[2], sa.Addr[3]).To4()
	case *unix.SockaddrInet6:
		ip := make(net.IP, net.IPv6len)
		copy(ip, sa.Addr[:])
		return ip
	}
	return nil
}
