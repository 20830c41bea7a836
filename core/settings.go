package core

import (
	"fmt"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// maxReadBufferLen is the largest IP datagram.
const maxReadBufferLen = 65535

// Settings contains all configurable properties of a raw socket session.
type Settings struct {
	// IPVersion selects IPv4 or IPv6 sockets.
	IPVersion IPVersion

	// Protocol is the IP protocol number the raw socket is opened for, e.g. 1 for ICMP.
	Protocol int

	// HeaderInclude defines if the caller supplies the IP header of outgoing packets.
	HeaderInclude bool

	// HopLimit is the unicast hop limit (TTL) applied to the socket when it is opened.
	HopLimit int

	// SendTimeout is the send timeout in milliseconds, 0 disables it.
	SendTimeout int

	// ReceiveTimeout is the receive timeout in milliseconds, 0 disables it.
	ReceiveTimeout int

	// SendBufferSize is the SO_SNDBUF size in bytes, 0 keeps the OS default.
	SendBufferSize int

	// ReceiveBufferSize is the SO_RCVBUF size in bytes, 0 keeps the OS default.
	ReceiveBufferSize int

	// UseSelectTimeout defines if timeouts are enforced by polling the socket instead of the OS options.
	UseSelectTimeout bool

	// ReadBufferLen is the size of the buffer each received datagram is read into.
	ReadBufferLen int

	// LoggingLevel is the logrus level of the session logger.
	LoggingLevel uint32
}

// DefaultSettings returns the default settings for a raw socket session, change as you wish.
func DefaultSettings() *Settings {
	return &Settings{
		IPVersion:         IPv4,
		Protocol:          1,
		HeaderInclude:     false,
		HopLimit:          DefaultHopLimit,
		SendTimeout:       0,
		ReceiveTimeout:    0,
		SendBufferSize:    0,
		ReceiveBufferSize: 0,
		UseSelectTimeout:  PlatformUsesSelectTimeout(runtime.GOOS),
		ReadBufferLen:     maxReadBufferLen,
		LoggingLevel:      uint32(log.WarnLevel),
	}
}

// PlatformUsesSelectTimeout reports whether the socket layer of goos ignores SO_RCVTIMEO and
// SO_SNDTIMEO on raw sockets, in which case timeouts must be enforced by polling.
func PlatformUsesSelectTimeout(goos string) bool {
	switch goos {
	case "solaris", "illumos":
		return true
	}
	return false
}

func (s *Settings) validate() error {
	if s.IPVersion != IPv4 && s.IPVersion != IPv6 {
		return fmt.Errorf("ip version must be 4 or 6, got %d", int(s.IPVersion))
	}
	if s.Protocol < 0 || s.Protocol > 255 {
		return fmt.Errorf("protocol must be between 0 and 255, got %d", s.Protocol)
	}
	if s.HopLimit < MinHopLimit || s.HopLimit > MaxHopLimit {
		return fmt.Errorf("hop limit must be between %d and %d, got %d", MinHopLimit, MaxHopLimit, s.HopLimit)
	}
	if s.SendTimeout < 0 {
		return fmt.Errorf("send timeout cannot be negative, got %d", s.SendTimeout)
	}
	if s.ReceiveTimeout < 0 {
		return fmt.Errorf("receive timeout cannot be negative, got %d", s.ReceiveTimeout)
	}
	if s.SendBufferSize < 0 {
		return fmt.Errorf("send buffer size cannot be negative, got %d", s.SendBufferSize)
	}
	if s.ReceiveBufferSize < 0 {
		return fmt.Errorf("receive buffer size cannot be negative, got %d", s.ReceiveBufferSize)
	}
	if s.ReadBufferLen <= 0 || s.ReadBufferLen > maxReadBufferLen {
		return fmt.Errorf("read buffer length must be between 1 and %d, got %d", maxReadBufferLen, s.ReadBufferLen)
	}
	if s.LoggingLevel > uint32(log.TraceLevel) {
		return fmt.Errorf("logging level must be at most %d, got %d", log.TraceLevel, s.LoggingLevel)
	}

	return nil
}
