package core

// CustomPacket is a naive Packet that stores the raw header and payload exactly as given. No checks
// are made for correctness or size. Hop limit and addresses are kept but never applied to the data,
// whoever consumes the packet decides whether they matter.
type CustomPacket struct {
	basePacket

	headerData  []byte
	payloadData []byte
}

// NewCustomPacket creates an empty, mutable CustomPacket.
func NewCustomPacket(source Source) *CustomPacket {
	p := &CustomPacket{
		headerData:  []byte{},
		payloadData: []byte{},
	}
	p.basePacket = newBasePacket(source, p)
	return p
}

// HeaderData returns a copy of the header bytes.
func (p *CustomPacket) HeaderData() []byte {
	return copyBytes(p.headerData)
}

// SetHeaderData replaces the header with a copy of header.
func (p *CustomPacket) SetHeaderData(header []byte) error {
	if p.finalized {
		return ErrFinalizedPacket
	}

	p.headerData = copyBytes(header)
	return nil
}

// PayloadData returns a copy of the payload bytes.
func (p *CustomPacket) PayloadData() []byte {
	return copyBytes(p.payloadData)
}

// SetPayloadData replaces the payload with a copy of payload.
func (p *CustomPacket) SetPayloadData(payload []byte) error {
	if p.finalized {
		return ErrFinalizedPacket
	}

	p.payloadData = copyBytes(payload)
	return nil
}

func (p *CustomPacket) HeaderLength() int {
	return len(p.headerData)
}

func (p *CustomPacket) PayloadLength() int {
	return len(p.payloadData)
}
