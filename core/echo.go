package core

import (
	"fmt"
	"net"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

const (
	echoCode       = 0
	icmpProtocol   = 1
	icmpv6Protocol = 58
)

// ICMPProtocol returns the ICMP protocol number matching an IP version.
func ICMPProtocol(version IPVersion) int {
	if version == IPv6 {
		return icmpv6Protocol
	}
	return icmpProtocol
}

// NewEchoRequest builds an outgoing packet whose payload is an ICMP (or ICMPv6) echo request. The
// header is left empty so the kernel prepends it, which requires header include to be off.
func NewEchoRequest(dst net.IP, id, seq int, data []byte) (*CustomPacket, error) {
	version, ok := ipVersionOf(dst)
	if !ok {
		return nil, invalidArgument("destination %s is not an IP address", dst)
	}

	msg := &icmp.Message{
		Type: echoType(version),
		Code: echoCode,
		Body: &icmp.Echo{
			ID:   id & 0xffff,
			Seq:  seq & 0xffff,
			Data: data,
		},
	}

	// ICMPv6 checksums are filled in by the kernel when no pseudo header is given
	payload, err := msg.Marshal(nil)
	if err != nil {
		return nil, fmt.Errorf("could not marshal ICMP message with Echo body: %w", err)
	}

	p := NewCustomPacket(Outgoing)
	if err := p.SetPayloadData(payload); err != nil {
		return nil, err
	}
	if err := p.SetDestinationAddress(dst); err != nil {
		return nil, err
	}

	return p, nil
}

// ParseICMP parses the payload of a packet as an ICMP message of the given IP version.
func ParseICMP(version IPVersion, p Packet) (*icmp.Message, error) {
	m, err := icmp.ParseMessage(ICMPProtocol(version), p.PayloadData())
	if err != nil {
		return nil, fmt.Errorf("error parsing ICMP message: %w", err)
	}
	return m, nil
}

// echoType returns the echo request type of an IP version.
func echoType(version IPVersion) icmp.Type {
	if version == IPv6 {
		return ipv6.ICMPTypeEchoRequest
	}
	return ipv4.ICMPTypeEcho
}
