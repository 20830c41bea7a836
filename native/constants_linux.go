//go:build linux

package native

import "golang.org/x/sys/unix"

const (
	// ipv6MaxHopLimit and ipv6Version are not exported by Linux headers.
	ipv6MaxHopLimit = 255
	ipv6Version     = 0x60
)

var constants = constantTable{
	"IPPROTO_IP":     unix.IPPROTO_IP,
	"IPPROTO_IPIP":   unix.IPPROTO_IPIP,
	"IPPROTO_IPV4":   unix.IPPROTO_IPIP,
	"IPPROTO_IPV6":   unix.IPPROTO_IPV6,
	"IPPROTO_TCP":    unix.IPPROTO_TCP,
	"IPPROTO_UDP":    unix.IPPROTO_UDP,
	"IPPROTO_ICMP":   unix.IPPROTO_ICMP,
	"IPPROTO_ICMPV6": unix.IPPROTO_ICMPV6,
	"IPPROTO_RAW":    unix.IPPROTO_RAW,

	"IP_HDRINCL":     unix.IP_HDRINCL,
	"IP_OPTIONS":     unix.IP_OPTIONS,
	"IP_RECVOPTS":    unix.IP_RECVOPTS,
	"IP_RECVRETOPTS": unix.IP_RETOPTS,
	"IP_TOS":         unix.IP_TOS,
	"IP_TTL":         unix.IP_TTL,

	"IPV6_HDRINCL":      unix.IPV6_HDRINCL,
	"IPV6_HOPLIMIT":     unix.IPV6_HOPLIMIT,
	"IPV6_UNICAST_HOPS": unix.IPV6_UNICAST_HOPS,
	"IPV6_MAXHLIM":      ipv6MaxHopLimit,
	"IPV6_VERSION":      ipv6Version,

	"SO_RCVBUF":   unix.SO_RCVBUF,
	"SO_RCVTIMEO": unix.SO_RCVTIMEO,
	"SO_SNDBUF":   unix.SO_SNDBUF,
	"SO_SNDTIMEO": unix.SO_SNDTIMEO,

	"SOL_SOCKET": unix.SOL_SOCKET,
	"SOL_IP":     unix.SOL_IP,
	"SOL_IPV6":   unix.SOL_IPV6,
	"SOL_TCP":    unix.SOL_TCP,
	"SOL_UDP":    unix.SOL_UDP,

	"AF_INET":  unix.AF_INET,
	"AF_INET6": unix.AF_INET6,
	"PF_INET":  unix.AF_INET,
	"PF_INET6": unix.AF_INET6,
}
