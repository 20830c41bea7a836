package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics provides several functions to update and retrieve stats about a session
type Statistics interface {
	SessionOpened()
	SessionClosed()
	PacketSent(bytes int)
	PacketReceived(bytes int)
	SendFailed()
	TimedOut()

	GetOpenTime() (time.Time, bool)
	GetCloseTime() (time.Time, bool)

	GetTotalSent() uint32
	GetTotalRecv() uint32
	GetTotalSendFailed() uint32
	GetTotalTimedOut() uint32
	GetBytesSent() uint64
	GetBytesRecv() uint64
}

// statistics aggregate stats about a session
type statistics struct {

	// totalSent is the total amount of packets handed to the socket in this session.
	totalSent uint32

	// totalRecv is the total amount of packets read from the socket in this session.
	totalRecv uint32

	// totalSendFailed is the total amount of packets the socket refused to send.
	totalSendFailed uint32

	// totalTimedOut is the total amount of select-based waits that expired.
	totalTimedOut uint32

	// bytesSent is the total amount of bytes written to the socket.
	bytesSent uint64

	// bytesRecv is the total amount of bytes read from the socket.
	bytesRecv uint64

	// timeMutex controls updates to the times
	timeMutex sync.RWMutex

	// openTime contains the time the socket was opened
	openTime time.Time

	// opened indicates whether the openTime has been initialized
	opened bool

	// closeTime contains the time the socket was closed
	closeTime time.Time

	// closed indicates whether the closeTime has been initialized
	closed bool
}

func (s *statistics) SessionOpened() {
	s.timeMutex.Lock()
	defer s.timeMutex.Unlock()

	s.openTime = time.Now()
	s.opened = true
}

func (s *statistics) SessionClosed() {
	s.timeMutex.Lock()
	defer s.timeMutex.Unlock()

	s.closeTime = time.Now()
	s.closed = true
}

func (s *statistics) PacketSent(bytes int) {
	atomic.AddUint32(&s.totalSent, 1)
	atomic.AddUint64(&s.bytesSent, uint64(bytes))
}

func (s *statistics) PacketReceived(bytes int) {
	atomic.AddUint32(&s.totalRecv, 1)
	atomic.AddUint64(&s.bytesRecv, uint64(bytes))
}

func (s *statistics) SendFailed() {
	atomic.AddUint32(&s.totalSendFailed, 1)
}

func (s *statistics) TimedOut() {
	atomic.AddUint32(&s.totalTimedOut, 1)
}

func (s *statistics) GetOpenTime() (time.Time, bool) {
	s.timeMutex.RLock()
	defer s.timeMutex.RUnlock()

	return s.openTime, s.opened
}

func (s *statistics) GetCloseTime() (time.Time, bool) {
	s.timeMutex.RLock()
	defer s.timeMutex.RUnlock()

	return s.closeTime, s.closed
}

func (s *statistics) GetTotalSent() uint32 {
	return atomic.LoadUint32(&s.totalSent)
}

func (s *statistics) GetTotalRecv() uint32 {
	return atomic.LoadUint32(&s.totalRecv)
}

func (s *statistics) GetTotalSendFailed() uint32 {
	return atomic.LoadUint32(&s.totalSendFailed)
}

func (s *statistics) GetTotalTimedOut() uint32 {
	return atomic.LoadUint32(&s.totalTimedOut)
}

func (s *statistics) GetBytesSent() uint64 {
	return atomic.LoadUint64(&s.bytesSent)
}

func (s *statistics) GetBytesRecv() uint64 {
	return atomic.LoadUint64(&s.bytesRecv)
}

// NewStatistics creates and initializes a Statistics struct.
func NewStatistics() Statistics {
	return &statistics{}
}
