package cmd

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/mikaelmello/rawsock/core"
)

// fakeTimeout behaves like EAGAIN after SO_RCVTIMEO expired.
type fakeTimeout struct{}

func (fakeTimeout) Error() string { return "resource temporarily unavailable" }
func (fakeTimeout) Timeout() bool { return true }

// loopNative is an in-memory raw socket that delivers queued datagrams and times out afterwards.
type loopNative struct {
	mu        sync.Mutex
	queue     [][]byte
	failAfter error
	protocols []core.Protocol
}

func (n *loopNative) push(data ...[]byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queue = append(n.queue, data...)
}

func (n *loopNative) Constant(name string) (int, error) {
	v, ok := map[string]int{
		core.ConstSOLSocket:   1,
		core.ConstIPProtoIP:   0,
		core.ConstIPProtoIPv6: 41,
		core.ConstIPTTL:       2,
		core.ConstIPv6Hops:    16,
		core.ConstSORcvTimo:   20,
		core.ConstSOSndTimo:   21,
		core.ConstPFInet:      2,
		core.ConstPFInet6:     10,
	}[name]
	if !ok {
		return 0, &core.ConstantNotDefinedError{Name: name}
	}
	return v, nil
}

func (n *loopNative) Open(family, protocol int) (int, error) { return 3, nil }
func (n *loopNative) Close(handle int) error { return nil }
func (n *loopNative) SetOption(handle, level, option, value int) error { return nil }
func (n *loopNative) GetOption(handle, level, option int) (int, error) { return 0, nil }

func (n *loopNative) SetTimeout(handle, option int, timeout core.TimeoutValue) error {
	return nil
}

func (n *loopNative) GetTimeout(handle, option int) (core.TimeoutValue, error) {
	return core.TimeoutValue{}, nil
}

func (n *loopNative) SendTo(handle int, data []byte, addr net.IP) (int, error) {
	return len(data), nil
}

func (n *loopNative) RecvFrom(handle int, buf []byte) (int, net.IP, error) {
	n.mu.Lock()
	if len(n.queue) > 0 {
		c := copy(buf, n.queue[0])
		n.queue = n.queue[1:]
		n.mu.Unlock()
		return c, net.IPv6loopback, nil
	}
	failure := n.failAfter
	n.mu.Unlock()

	if failure != nil {
		return 0, nil, failure
	}
	time.Sleep(5 * time.Millisecond)
	return 0, nil, &core.NativeError{Op: "recvfrom", Err: fakeTimeout{}}
}

func (n *loopNative) WaitReadable(handle int, timeout core.TimeoutValue) (bool, error) {
	return true, nil
}

func (n *loopNative) WaitWritable(handle int, timeout core.TimeoutValue) (bool, error) {
	return true, nil
}

func (n *loopNative) ProtocolByName(name string) (core.Protocol, bool, error) {
	for _, p := range n.protocols {
		if p.Name == name {
			return p, true, nil
		}
	}
	return core.Protocol{}, false, nil
}

func (n *loopNative) ProtocolByNumber(number int) (core.Protocol, bool, error) {
	for _, p := range n.protocols {
		if p.Number == number {
			return p, true, nil
		}
	}
	return core.Protocol{}, false, nil
}

func (n *loopNative) Protocols() ([]core.Protocol, error) {
	return n.protocols, nil
}

var errSocketGone = errors.New("socket gone")

// newLoopSession opens an IPv6 session over native, IPv6 datagrams carry no header to build.
func newLoopSession(native *loopNative) (*core.Session, error) {
	settings := core.DefaultSettings()
	settings.IPVersion = core.IPv6
	settings.Protocol = 58
	settings.UseSelectTimeout = false

	session, err := core.NewSession(native, settings)
	if err != nil {
		return nil, err
	}
	return session, session.Open()
}
