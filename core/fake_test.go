package core

import (
	"errors"
	"net"
)

// fakeHandle is the handle every fake socket gets.
const fakeHandle = 3

var errFakeBadHandle = errors.New("bad file descriptor")

type optionKey struct {
	level, option int
}

// fakeNative records every call a session makes and answers from in-memory state.
type fakeNative struct {
	constants map[string]int
	lookups   map[string]int

	open    bool
	openErr error

	options     map[optionKey]int
	optionErr   error
	timeouts    map[int]TimeoutValue
	timeoutSets int

	sent   [][]byte
	sentTo []net.IP

	received [][]byte
	recvFrom net.IP
	recvErr  error

	ready bool
	waits int

	protocols []Protocol
}

func newFakeNative() *fakeNative {
	return &fakeNative{
		constants: map[string]int{
			ConstSOLSocket:   1,
			ConstIPProtoIP:   0,
			ConstIPProtoIPv6: 41,
			ConstIPProtoTCP:  6,
			ConstIPProtoUDP:  17,
			ConstIPProtoICMP: 1,
			ConstIPHdrIncl:   3,
			ConstIPTTL:       2,
			ConstIPv6HdrIncl: 36,
			ConstIPv6Hops:    16,
			ConstSORcvBuf:    8,
			ConstSOSndBuf:    7,
			ConstSORcvTimo:   20,
			ConstSOSndTimo:   21,
			ConstAFInet:      2,
			ConstAFInet6:     10,
			ConstPFInet:      2,
			ConstPFInet6:     10,
		},
		lookups:  map[string]int{},
		options:  map[optionKey]int{},
		timeouts: map[int]TimeoutValue{},
		ready:    true,
	}
}

func (f *fakeNative) Constant(name string) (int, error) {
	f.lookups[name]++
	v, ok := f.constants[name]
	if !ok {
		return 0, &ConstantNotDefinedError{Name: name}
	}
	return v, nil
}

func (f *fakeNative) Open(family, protocol int) (int, error) {
	if f.openErr != nil {
		return -1, f.openErr
	}
	f.open = true
	return fakeHandle, nil
}

func (f *fakeNative) Close(handle int) error {
	if err := f.check("close", handle); err != nil {
		return err
	}
	f.open = false
	return nil
}

func (f *fakeNative) check(op string, handle int) error {
	if !f.open || handle != fakeHandle {
		return &NativeError{Op: op, Err: errFakeBadHandle}
	}
	return nil
}

func (f *fakeNative) SetOption(handle, level, option, value int) error {
	if err := f.check("setsockopt", handle); err != nil {
		return err
	}
	if f.optionErr != nil {
		return f.optionErr
	}
	f.options[optionKey{level, option}] = value
	return nil
}

func (f *fakeNative) GetOption(handle, level, option int) (int, error) {
	if err := f.check("getsockopt", handle); err != nil {
		return -1, err
	}
	if f.optionErr != nil {
		return -1, f.optionErr
	}
	return f.options[optionKey{level, option}], nil
}

func (f *fakeNative) SetTimeout(handle, option int, timeout TimeoutValue) error {
	if err := f.check("setsockopt", handle); err != nil {
		return err
	}
	f.timeoutSets++
	f.timeouts[option] = timeout
	return nil
}

func (f *fakeNative) GetTimeout(handle, option int) (TimeoutValue, error) {
	if err := f.check("getsockopt", handle); err != nil {
		return TimeoutValue{}, err
	}
	return f.timeouts[option], nil
}

func (f *fakeNative) SendTo(handle int, data []byte, addr net.IP) (int, error) {
	if err := f.check("sendto", handle); err != nil {
		return 0, err
	}
	f.sent = append(f.sent, data)
	f.sentTo = append(f.sentTo, addr)
	return len(data), nil
}

func (f *fakeNative) RecvFrom(handle int, buf []byte) (int, net.IP, error) {
	if err := f.check("recvfrom", handle); err != nil {
		return 0, nil, err
	}
	if f.recvErr != nil {
		return 0, nil, f.recvErr
	}
	if len(f.received) == 0 {
		return 0, nil, &NativeError{Op: "recvfrom", Err: fakeTimeoutError{}}
	}

	n := copy(buf, f.received[0])
	f.received = f.received[1:]
	return n, f.recvFrom, nil
}

func (f *fakeNative) WaitReadable(handle int, timeout TimeoutValue) (bool, error) {
	f.waits++
	return f.ready, f.check("poll", handle)
}

func (f *fakeNative) WaitWritable(handle int, timeout TimeoutValue) (bool, error) {
	f.waits++
	return f.ready, f.check("poll", handle)
}

// fakeDirectoryNative is a fakeNative that also provides a protocol directory.
type fakeDirectoryNative struct {
	*fakeNative
}

func (f fakeDirectoryNative) ProtocolByName(name string) (Protocol, bool, error) {
	for _, p := range f.protocols {
		if p.Name == name {
			return p, true, nil
		}
	}
	return Protocol{}, false, nil
}

func (f fakeDirectoryNative) ProtocolByNumber(number int) (Protocol, bool, error) {
	for _, p := range f.protocols {
		if p.Number == number {
			return p, true, nil
		}
	}
	return Protocol{}, false, nil
}

func (f fakeDirectoryNative) Protocols() ([]Protocol, error) {
	return f.protocols, nil
}

// fakeTimeoutError behaves like EAGAIN after SO_RCVTIMEO expired.
type fakeTimeoutError struct{}

func (fakeTimeoutError) Error() string { return "resource temporarily unavailable" }
func (fakeTimeoutError) Timeout() bool { return true }
