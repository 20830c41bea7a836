package core

import (
	"fmt"
	"net"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/ipv4"
)

// undefinedHandle is the handle of a session whose socket is not open.
const undefinedHandle = -1

// Session wraps one native raw socket and translates high level configuration into native option
// calls. A Session is not safe for concurrent use, callers must serialize option calls.
type Session struct {
	// Stats contain the overall statistics of the session
	Stats Statistics

	settings *Settings

	// native performs every system call of the session.
	native Native

	// protocols is the protocol directory of the native layer, nil if it has none.
	protocols ProtocolDirectory

	translator *optionTranslator

	// handle is the native socket identifier, undefinedHandle while closed.
	handle int

	ipVersion IPVersion

	// useSelectTimeout defines if timeouts are enforced by polling the socket instead of by the OS.
	useSelectTimeout bool

	sendTimeout    TimeoutValue
	receiveTimeout TimeoutValue

	// logger is an instance of logrus used to log activities related to this session
	logger *log.Logger
}

// NewSession creates a new Session driving native. The socket is not opened until Open is called.
func NewSession(native Native, settings *Settings) (*Session, error) {
	logger := NewLogger(settings.LoggingLevel)

	logger.Debug("Validating settings")

	if err := settings.validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	logger.Debug("Settings configured correctly")

	session := &Session{
		Stats:            NewStatistics(),
		settings:         settings,
		native:           native,
		translator:       newOptionTranslator(native),
		handle:           undefinedHandle,
		ipVersion:        settings.IPVersion,
		useSelectTimeout: settings.UseSelectTimeout,
		logger:           logger,
	}

	if dir, ok := native.(ProtocolDirectory); ok {
		session.protocols = dir
	}

	// validate already rejected negative timeouts
	_ = session.sendTimeout.SetByMilliseconds(settings.SendTimeout)
	_ = session.receiveTimeout.SetByMilliseconds(settings.ReceiveTimeout)

	logger.Infof("Created session for %s protocol %d, select timeout %t",
		session.ipVersion, settings.Protocol, session.useSelectTimeout)

	return session, nil
}

// Open creates the raw socket and applies the configured options to it. If any option fails the
// socket is closed again and the error returned.
func (s *Session) Open() error {
	if s.IsOpen() {
		return fmt.Errorf("session socket is already open with handle %d", s.handle)
	}

	family, err := s.translator.constant(s.ipVersion.PacketFamily())
	if err != nil {
		return err
	}

	s.logger.Infof("Opening raw %s socket for protocol %d", s.ipVersion, s.settings.Protocol)
	handle, err := s.native.Open(family, s.settings.Protocol)
	if err != nil {
		return err
	}
	s.handle = handle
	s.Stats.SessionOpened()

	if err := s.configure(); err != nil {
		s.logger.Errorf("Could not configure socket %d, closing it: %s", handle, err)
		if cerr := s.Close(); cerr != nil {
			s.logger.Warnf("Could not close socket %d: %s", handle, cerr)
		}
		return err
	}

	s.logger.Debugf("Socket %d opened and configured", handle)
	return nil
}

// configure pushes the settings to a freshly opened socket.
func (s *Session) configure() error {
	if s.settings.HeaderInclude {
		if err := s.SetIPHeaderInclude(true); err != nil {
			return err
		}
	}

	if err := s.setHopLimit(s.settings.HopLimit); err != nil {
		return err
	}

	if s.settings.SendBufferSize > 0 {
		if err := s.SetSendBufferSize(s.settings.SendBufferSize); err != nil {
			return err
		}
	}
	if s.settings.ReceiveBufferSize > 0 {
		if err := s.SetReceiveBufferSize(s.settings.ReceiveBufferSize); err != nil {
			return err
		}
	}

	if !s.sendTimeout.IsZero() {
		if err := s.SetSendTimeout(s.sendTimeout.InMilliseconds()); err != nil {
			return err
		}
	}
	if !s.receiveTimeout.IsZero() {
		if err := s.SetReceiveTimeout(s.receiveTimeout.InMilliseconds()); err != nil {
			return err
		}
	}

	return nil
}

// Close closes the socket. Closing a session that is not open does nothing.
func (s *Session) Close() error {
	if !s.IsOpen() {
		return nil
	}

	s.logger.Infof("Closing socket %d", s.handle)
	err := s.native.Close(s.handle)
	s.handle = undefinedHandle
	s.Stats.SessionClosed()

	return err
}

// IsOpen returns whether the session holds an open socket.
func (s *Session) IsOpen() bool {
	return s.handle != undefinedHandle
}

// Handle returns the native socket identifier, -1 if the socket is not open.
func (s *Session) Handle() int {
	return s.handle
}

// IPVersion returns the IP version of the session socket.
func (s *Session) IPVersion() IPVersion {
	return s.ipVersion
}

// Constant resolves a symbolic socket constant, e.g. "SO_RCVBUF", through the native layer.
func (s *Session) Constant(name string) (int, error) {
	return s.translator.constant(name)
}

// SetSocketOption sets an option at the given level. The native layer decides whether the option and
// value are acceptable.
func (s *Session) SetSocketOption(level SocketLevel, option, value int) error {
	lvl, err := s.translator.level(level)
	if err != nil {
		return err
	}

	s.logger.Debugf("Setting option %d at level %s (%d) to %d on socket %d", option, level, lvl, value, s.handle)
	return s.native.SetOption(s.handle, lvl, option, value)
}

// SocketOption returns the value of an option at the given level.
func (s *Session) SocketOption(level SocketLevel, option int) (int, error) {
	lvl, err := s.translator.level(level)
	if err != nil {
		return 0, err
	}

	s.logger.Tracef("Getting option %d at level %s (%d) on socket %d", option, level, lvl, s.handle)
	return s.native.GetOption(s.handle, lvl, option)
}

// setNamedOption sets an option identified by its symbolic name.
func (s *Session) setNamedOption(level SocketLevel, option string, value int) error {
	_, opt, err := s.translator.translate(level, option)
	if err != nil {
		return err
	}
	return s.SetSocketOption(level, opt, value)
}

// namedOption returns an option identified by its symbolic name.
func (s *Session) namedOption(level SocketLevel, option string) (int, error) {
	_, opt, err := s.translator.translate(level, option)
	if err != nil {
		return 0, err
	}
	return s.SocketOption(level, opt)
}

// SetUseSelectTimeout defines if send and receive timeouts are enforced by polling the socket for
// readiness instead of by the SO_SNDTIMEO and SO_RCVTIMEO options, which some platforms ignore for
// raw sockets.
func (s *Session) SetUseSelectTimeout(useSelectTimeout bool) {
	s.logger.Debugf("Setting select timeout to %t", useSelectTimeout)
	s.useSelectTimeout = useSelectTimeout
}

// UseSelectTimeout returns whether timeouts are enforced by polling.
func (s *Session) UseSelectTimeout() bool {
	return s.useSelectTimeout
}

// SetSendTimeout sets the send timeout in milliseconds. The OS option is only updated when select
// timeouts are disabled.
func (s *Session) SetSendTimeout(milliseconds int) error {
	return s.setTimeout(&s.sendTimeout, ConstSOSndTimo, milliseconds)
}

// SendTimeout returns the send timeout in milliseconds.
func (s *Session) SendTimeout() (int, error) {
	return s.timeout(s.sendTimeout, ConstSOSndTimo)
}

// SetReceiveTimeout sets the receive timeout in milliseconds. The OS option is only updated when
// select timeouts are disabled.
func (s *Session) SetReceiveTimeout(milliseconds int) error {
	return s.setTimeout(&s.receiveTimeout, ConstSORcvTimo, milliseconds)
}

// ReceiveTimeout returns the receive timeout in milliseconds.
func (s *Session) ReceiveTimeout() (int, error) {
	return s.timeout(s.receiveTimeout, ConstSORcvTimo)
}

func (s *Session) setTimeout(local *TimeoutValue, option string, milliseconds int) error {
	if err := local.SetByMilliseconds(milliseconds); err != nil {
		return err
	}

	if s.useSelectTimeout {
		s.logger.Debugf("Keeping %s of %dms locally, select timeout is enabled", option, milliseconds)
		return nil
	}

	opt, err := s.translator.constant(option)
	if err != nil {
		return err
	}

	s.logger.Debugf("Setting %s to %dms on socket %d", option, milliseconds, s.handle)
	return s.native.SetTimeout(s.handle, opt, *local)
}

func (s *Session) timeout(local TimeoutValue, option string) (int, error) {
	if s.useSelectTimeout {
		return local.InMilliseconds(), nil
	}

	opt, err := s.translator.constant(option)
	if err != nil {
		return 0, err
	}

	tv, err := s.native.GetTimeout(s.handle, opt)
	if err != nil {
		return 0, err
	}
	return tv.InMilliseconds(), nil
}

// SetSendBufferSize sets SO_SNDBUF.
func (s *Session) SetSendBufferSize(bytes int) error {
	return s.setNamedOption(LevelSocket, ConstSOSndBuf, bytes)
}

// SendBufferSize returns SO_SNDBUF.
func (s *Session) SendBufferSize() (int, error) {
	return s.namedOption(LevelSocket, ConstSOSndBuf)
}

// SetReceiveBufferSize sets SO_RCVBUF.
func (s *Session) SetReceiveBufferSize(bytes int) error {
	return s.setNamedOption(LevelSocket, ConstSORcvBuf, bytes)
}

// ReceiveBufferSize returns SO_RCVBUF.
func (s *Session) ReceiveBufferSize() (int, error) {
	return s.namedOption(LevelSocket, ConstSORcvBuf)
}

// SetIPHeaderInclude defines if outgoing packets carry their own IP header.
func (s *Session) SetIPHeaderInclude(on bool) error {
	if s.ipVersion == IPv6 {
		return s.setNamedOption(LevelIPv6, ConstIPv6HdrIncl, boolToOption(on))
	}
	return s.setNamedOption(LevelIP, ConstIPHdrIncl, boolToOption(on))
}

// IPHeaderInclude returns whether outgoing packets carry their own IP header.
func (s *Session) IPHeaderInclude() (bool, error) {
	var value int
	var err error
	if s.ipVersion == IPv6 {
		value, err = s.namedOption(LevelIPv6, ConstIPv6HdrIncl)
	} else {
		value, err = s.namedOption(LevelIP, ConstIPHdrIncl)
	}
	return value == 1, err
}

// setHopLimit sets the unicast TTL (IPv4) or hop limit (IPv6) of the socket.
func (s *Session) setHopLimit(hopLimit int) error {
	if s.ipVersion == IPv6 {
		return s.setNamedOption(LevelIPv6, ConstIPv6Hops, hopLimit)
	}
	return s.setNamedOption(LevelIP, ConstIPTTL, hopLimit)
}

// Send finalizes an outgoing packet and writes it to its destination address. When select timeouts
// are enabled and a send timeout is set, ErrTimeout is returned if the socket does not become
// writable in time.
func (s *Session) Send(p Packet) (int, error) {
	if p == nil {
		return 0, invalidArgument("packet cannot be nil")
	}
	if p.Source() != Outgoing {
		return 0, invalidArgument("only outgoing packets can be sent, got %s", p.Source())
	}

	dst := p.DestinationAddress()
	if dst == nil {
		return 0, invalidArgument("packet has no destination address")
	}
	if version, ok := ipVersionOf(dst); !ok || version != s.ipVersion {
		return 0, invalidArgument("destination %s is not an %s address", dst, s.ipVersion)
	}

	p.FinalizePacket()

	if s.useSelectTimeout && !s.sendTimeout.IsZero() {
		ready, err := s.native.WaitWritable(s.handle, s.sendTimeout)
		if err != nil {
			return 0, err
		}
		if !ready {
			s.Stats.TimedOut()
			return 0, ErrTimeout
		}
	}

	data := p.PacketData()
	s.logger.Tracef("Writing %d bytes %x to %s", len(data), data, dst)

	n, err := s.native.SendTo(s.handle, data, dst)
	if err != nil {
		s.Stats.SendFailed()
		return n, err
	}

	s.Stats.PacketSent(n)
	return n, nil
}

// Receive reads one datagram and returns it as a finalized incoming packet. When select timeouts are
// enabled and a receive timeout is set, ErrTimeout is returned if nothing arrives in time.
func (s *Session) Receive() (*CustomPacket, error) {
	if s.useSelectTimeout && !s.receiveTimeout.IsZero() {
		ready, err := s.native.WaitReadable(s.handle, s.receiveTimeout)
		if err != nil {
			return nil, err
		}
		if !ready {
			s.Stats.TimedOut()
			return nil, ErrTimeout
		}
	}

	buf := make([]byte, s.settings.ReadBufferLen)
	n, from, err := s.native.RecvFrom(s.handle, buf)
	if err != nil {
		return nil, err
	}

	s.logger.Tracef("Read %d bytes %x from %s", n, buf[:n], from)
	s.Stats.PacketReceived(n)

	return s.buildIncomingPacket(buf[:n], from)
}

// buildIncomingPacket splits a received datagram into header and payload. IPv4 raw sockets deliver
// the IP header, IPv6 raw sockets do not.
func (s *Session) buildIncomingPacket(data []byte, from net.IP) (*CustomPacket, error) {
	p := NewCustomPacket(Incoming)
	header, payload := data[:0], data

	if s.ipVersion == IPv4 {
		h, err := ipv4.ParseHeader(data)
		if err != nil {
			return nil, fmt.Errorf("could not parse IPv4 header of received packet: %w", err)
		}
		if h.Len < ipv4.HeaderLen || h.Len > len(data) {
			return nil, fmt.Errorf("received packet has invalid header length %d for %d bytes", h.Len, len(data))
		}

		header, payload = data[:h.Len], data[h.Len:]

		if h.TTL >= MinHopLimit {
			if err := p.SetHopLimit(h.TTL); err != nil {
				return nil, err
			}
		}
		if h.Dst != nil {
			if err := p.SetDestinationAddress(h.Dst); err != nil {
				return nil, err
			}
		}
		if from == nil {
			from = h.Src
		}
	}

	if from != nil {
		if _, err := p.SetSourceAddress(from); err != nil {
			return nil, err
		}
	}
	if err := p.SetHeaderData(header); err != nil {
		return nil, err
	}
	if err := p.SetPayloadData(payload); err != nil {
		return nil, err
	}

	p.FinalizePacket()
	return p, nil
}

// ProtocolByName looks up a protocol in the system protocol directory.
func (s *Session) ProtocolByName(name string) (Protocol, bool, error) {
	if s.protocols == nil {
		return Protocol{}, false, ErrUnsupported
	}
	return s.protocols.ProtocolByName(name)
}

// ProtocolByNumber looks up a protocol in the system protocol directory.
func (s *Session) ProtocolByNumber(number int) (Protocol, bool, error) {
	if s.protocols == nil {
		return Protocol{}, false, ErrUnsupported
	}
	return s.protocols.ProtocolByNumber(number)
}

// Protocols lists the system protocol directory.
func (s *Session) Protocols() ([]Protocol, error) {
	if s.protocols == nil {
		return nil, ErrUnsupported
	}
	return s.protocols.Protocols()
}
