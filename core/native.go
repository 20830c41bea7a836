package core

import "net"

// Symbolic names of the native constants used by this package.
const (
	ConstIPProtoIP   = "IPPROTO_IP"
	ConstIPProtoIPv6 = "IPPROTO_IPV6"
	ConstIPProtoTCP  = "IPPROTO_TCP"
	ConstIPProtoUDP  = "IPPROTO_UDP"
	ConstIPProtoICMP = "IPPROTO_ICMP"

	ConstIPHdrIncl   = "IP_HDRINCL"
	ConstIPTTL       = "IP_TTL"
	ConstIPv6HdrIncl = "IPV6_HDRINCL"
	ConstIPv6Hops    = "IPV6_UNICAST_HOPS"

	ConstSOLSocket = "SOL_SOCKET"
	ConstSORcvBuf  = "SO_RCVBUF"
	ConstSOSndBuf  = "SO_SNDBUF"
	ConstSORcvTimo = "SO_RCVTIMEO"
	ConstSOSndTimo = "SO_SNDTIMEO"

	ConstAFInet  = "AF_INET"
	ConstAFInet6 = "AF_INET6"
	ConstPFInet  = "PF_INET"
	ConstPFInet6 = "PF_INET6"
)

// ConstantResolver looks up the platform value of a symbolic socket constant. It returns a
// *ConstantNotDefinedError when the platform does not define the name.
type ConstantResolver interface {
	Constant(name string) (int, error)
}

// Native is the operating system socket capability a Session drives. Implementations report
// failures as *NativeError and perform no retries.
type Native interface {
	ConstantResolver

	// Open creates a raw socket and returns its handle.
	Open(family, protocol int) (int, error)
	Close(handle int) error

	SetOption(handle, level, option, value int) error
	GetOption(handle, level, option int) (int, error)

	// SetTimeout and GetTimeout handle the timeval-shaped SO_SNDTIMEO and SO_RCVTIMEO options.
	SetTimeout(handle, option int, timeout TimeoutValue) error
	GetTimeout(handle, option int) (TimeoutValue, error)

	SendTo(handle int, data []byte, addr net.IP) (int, error)
	RecvFrom(handle int, buf []byte) (int, net.IP, error)

	// WaitReadable and WaitWritable block until the socket is ready or the timeout expires,
	// returning false in the latter case.
	WaitReadable(handle int, timeout TimeoutValue) (bool, error)
	WaitWritable(handle int, timeout TimeoutValue) (bool, error)
}

// Protocol is an entry of the system protocol directory.
type Protocol struct {
	Name    string
	Aliases []string
	Number  int
}

func (p Protocol) String() string {
	return p.Name
}

// ProtocolDirectory queries the protocol database of the system. Lookups of unknown protocols
// return false.
type ProtocolDirectory interface {
	ProtocolByName(name string) (Protocol, bool, error)
	ProtocolByNumber(number int) (Protocol, bool, error)
	Protocols() ([]Protocol, error)
}
