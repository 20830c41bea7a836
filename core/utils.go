package core

import "net"

func isIPv4(ip net.IP) bool {
	return ip.To4() != nil
}

func isIPv6(ip net.IP) bool {
	return len(ip) == net.IPv6len && !isIPv4(ip)
}

// ipVersionOf returns the IP version of the address and false when it is neither.
func ipVersionOf(ip net.IP) (IPVersion, bool) {
	switch {
	case isIPv4(ip):
		return IPv4, true
	case isIPv6(ip):
		return IPv6, true
	}
	return IPv4, false
}

// copyIP returns an independent copy of ip, nil stays nil.
func copyIP(ip net.IP) net.IP {
	if ip == nil {
		return nil
	}
	dup := make(net.IP, len(ip))
	copy(dup, ip)
	return dup
}

// copyBytes returns an independent copy of b, never nil.
func copyBytes(b []byte) []byte {
	dup := make([]byte, len(b))
	copy(dup, b)
	return dup
}
