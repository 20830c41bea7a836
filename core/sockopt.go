package core

import "fmt"

// SocketLevel is the protocol level a socket option applies to.
type SocketLevel int

const (
	// LevelSocket is the socket itself, for IPv4 and IPv6.
	LevelSocket SocketLevel = iota
	// LevelIP is the IPv4 layer.
	LevelIP
	// LevelIPv6 is the IPv6 layer.
	LevelIPv6
	LevelTCP
	LevelUDP
	LevelICMP
)

var socketLevels = map[SocketLevel]struct {
	name         string
	constant     string
	supportsIPv6 bool
}{
	LevelSocket: {"socket", ConstSOLSocket, true},
	LevelIP:     {"ip", ConstIPProtoIP, false},
	LevelIPv6:   {"ipv6", ConstIPProtoIPv6, true},
	LevelTCP:    {"tcp", ConstIPProtoTCP, true},
	LevelUDP:    {"udp", ConstIPProtoUDP, true},
	LevelICMP:   {"icmp", ConstIPProtoICMP, true},
}

func (l SocketLevel) String() string {
	if lvl, ok := socketLevels[l]; ok {
		return lvl.name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Constant returns the symbolic name of the OS constant for this level.
func (l SocketLevel) Constant() string {
	return socketLevels[l].constant
}

// SupportsIPv6 returns whether options at this level apply to IPv6 sockets.
func (l SocketLevel) SupportsIPv6() bool {
	return socketLevels[l].supportsIPv6
}

// IPVersion is the Internet protocol version of a socket.
type IPVersion int

const (
	IPv4 IPVersion = 4
	IPv6 IPVersion = 6
)

func (v IPVersion) String() string {
	return fmt.Sprintf("IPv%d", int(v))
}

// PacketFamily returns the symbolic name of the protocol family constant.
func (v IPVersion) PacketFamily() string {
	if v == IPv6 {
		return ConstPFInet6
	}
	return ConstPFInet
}

// AddressFamily returns the symbolic name of the address family constant.
func (v IPVersion) AddressFamily() string {
	if v == IPv6 {
		return ConstAFInet6
	}
	return ConstAFInet
}

// optionTranslator turns levels and symbolic option names into the numbers the native layer expects.
// Resolved constants are cached. It is not safe for concurrent use.
type optionTranslator struct {
	resolver ConstantResolver
	cache    map[string]int
}

func newOptionTranslator(resolver ConstantResolver) *optionTranslator {
	return &optionTranslator{
		resolver: resolver,
		cache:    make(map[string]int),
	}
}

// constant resolves a symbolic constant, consulting the cache first.
func (t *optionTranslator) constant(name string) (int, error) {
	if v, ok := t.cache[name]; ok {
		return v, nil
	}

	v, err := t.resolver.Constant(name)
	if err != nil {
		return 0, err
	}

	t.cache[name] = v
	return v, nil
}

// level resolves the numeric OS constant of a socket level.
func (t *optionTranslator) level(level SocketLevel) (int, error) {
	name := level.Constant()
	if name == "" {
		return 0, invalidArgument("unknown socket level %d", int(level))
	}
	return t.constant(name)
}

// translate resolves a (level, option name) pair into its numeric shape.
func (t *optionTranslator) translate(level SocketLevel, option string) (int, int, error) {
	lvl, err := t.level(level)
	if err != nil {
		return 0, 0, err
	}

	opt, err := t.constant(option)
	if err != nil {
		return 0, 0, err
	}

	return lvl, opt, nil
}

func boolToOption(on bool) int {
	if on {
		return 1
	}
	return 0
}
