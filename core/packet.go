package core

import (
	"net"
)

const (
	// MinHopLimit is the smallest hop limit (TTL) a packet may carry.
	MinHopLimit = 1
	// DefaultHopLimit is the hop limit of a newly created packet.
	DefaultHopLimit = 60
	// MaxHopLimit is the largest hop limit (TTL) a packet may carry.
	MaxHopLimit = 255
)

// Source tells whether a packet was received from or is going to the network.
type Source int

const (
	// Incoming packets were read from a socket.
	Incoming Source = iota
	// Outgoing packets are built locally to be sent.
	Outgoing
)

func (s Source) String() string {
	switch s {
	case Incoming:
		return "incoming"
	case Outgoing:
		return "outgoing"
	}
	return "unknown"
}

// Packet is the contract shared by every packet variant. A packet is mutable until FinalizePacket is
// called, after which every setter fails with ErrFinalizedPacket.
type Packet interface {
	// PacketData returns the header followed by the payload.
	PacketData() []byte
	HeaderData() []byte
	PayloadData() []byte
	SetPayloadData(payload []byte) error

	PacketLength() int
	HeaderLength() int
	PayloadLength() int

	HopLimit() int
	SetHopLimit(hopLimit int) error

	SourceAddress() net.IP
	// SetSourceAddress returns false without changing anything when the packet is Outgoing, the
	// transmitting layer owns the source address of those.
	SetSourceAddress(addr net.IP) (bool, error)
	DestinationAddress() net.IP
	SetDestinationAddress(addr net.IP) error

	FinalizePacket()
	IsFinalized() bool
	Source() Source
}

// packetData is the storage a variant provides to basePacket.
type packetData interface {
	HeaderData() []byte
	PayloadData() []byte
	HeaderLength() int
	PayloadLength() int
}

// basePacket holds the state common to all variants. Variants embed it and hand over their storage.
type basePacket struct {
	data packetData

	source    Source
	finalized bool
	hopLimit  int

	sourceAddress      net.IP
	destinationAddress net.IP
}

func newBasePacket(source Source, data packetData) basePacket {
	return basePacket{
		data:     data,
		source:   source,
		hopLimit: DefaultHopLimit,
	}
}

// PacketData returns the concatenation of the header and payload data.
func (p *basePacket) PacketData() []byte {
	header := p.data.HeaderData()
	payload := p.data.PayloadData()

	data := make([]byte, 0, len(header)+len(payload))
	data = append(data, header...)
	return append(data, payload...)
}

// PacketLength returns the header length plus the payload length.
func (p *basePacket) PacketLength() int {
	return p.data.HeaderLength() + p.data.PayloadLength()
}

// HopLimit returns the hop limit (IPv6) or time to live (IPv4) of the packet.
func (p *basePacket) HopLimit() int {
	return p.hopLimit
}

// SetHopLimit sets the hop limit, which must be between MinHopLimit and MaxHopLimit.
func (p *basePacket) SetHopLimit(hopLimit int) error {
	if p.finalized {
		return ErrFinalizedPacket
	}
	if hopLimit < MinHopLimit || hopLimit > MaxHopLimit {
		return ErrIllegalHopLimit
	}

	p.hopLimit = hopLimit
	return nil
}

// FinalizePacket protects the packet against further modification. Calling it again is a no-op.
func (p *basePacket) FinalizePacket() {
	p.finalized = true
}

func (p *basePacket) IsFinalized() bool {
	return p.finalized
}

func (p *basePacket) Source() Source {
	return p.source
}

func (p *basePacket) SourceAddress() net.IP {
	return copyIP(p.sourceAddress)
}

// SetSourceAddress stores the address the packet originated from. It only applies to incoming packets:
// for outgoing ones it returns false and leaves the packet untouched.
func (p *basePacket) SetSourceAddress(addr net.IP) (bool, error) {
	if addr == nil {
		return false, invalidArgument("source address cannot be nil")
	}
	if p.source == Outgoing {
		return false, nil
	}
	if p.finalized {
		return false, ErrFinalizedPacket
	}

	p.sourceAddress = copyIP(addr)
	return true, nil
}

func (p *basePacket) DestinationAddress() net.IP {
	return copyIP(p.destinationAddress)
}

// SetDestinationAddress stores the address the packet is addressed to.
func (p *basePacket) SetDestinationAddress(addr net.IP) error {
	if addr == nil {
		return invalidArgument("destination address cannot be nil")
	}
	if p.finalized {
		return ErrFinalizedPacket
	}

	p.destinationAddress = copyIP(addr)
	return nil
}
