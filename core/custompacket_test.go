package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCustomPacketHeaderCopy verifies that the header cannot be changed from outside
func TestCustomPacketHeaderCopy(t *testing.T) {
	header := []byte{0x45, 0x00, 0x00, 0x14}
	p := NewCustomPacket(Outgoing)
	require.NoError(t, p.SetHeaderData(header))

	header[0] = 0xff
	assert.Equal(t, []byte{0x45, 0x00, 0x00, 0x14}, p.HeaderData())

	got := p.HeaderData()
	got[1] = 0xff
	assert.Equal(t, []byte{0x45, 0x00, 0x00, 0x14}, p.HeaderData())
}

// TestCustomPacketPayloadCopy verifies that the payload cannot be changed from outside
func TestCustomPacketPayloadCopy(t *testing.T) {
	payload := []byte{0x08, 0x00}
	p := NewCustomPacket(Incoming)
	require.NoError(t, p.SetPayloadData(payload))

	payload[0] = 0x00
	assert.Equal(t, []byte{0x08, 0x00}, p.PayloadData())

	got := p.PayloadData()
	got[0] = 0x00
	assert.Equal(t, []byte{0x08, 0x00}, p.PayloadData())

	data := p.PacketData()
	data[0] = 0x00
	assert.Equal(t, []byte{0x08, 0x00}, p.PacketData())
}

// TestCustomPacketReplaceBuffers verifies that setters replace, not append
func TestCustomPacketReplaceBuffers(t *testing.T) {
	p := NewCustomPacket(Outgoing)
	require.NoError(t, p.SetHeaderData([]byte{1, 2, 3}))
	require.NoError(t, p.SetHeaderData([]byte{4}))
	require.NoError(t, p.SetPayloadData([]byte{5, 6}))
	require.NoError(t, p.SetPayloadData([]byte{}))

	assert.Equal(t, 1, p.HeaderLength())
	assert.Equal(t, 0, p.PayloadLength())
	assert.Equal(t, []byte{4}, p.PacketData())
}

// TestCustomPacketNilBuffers verifies that nil buffers are stored as empty ones
func TestCustomPacketNilBuffers(t *testing.T) {
	p := NewCustomPacket(Outgoing)
	require.NoError(t, p.SetHeaderData(nil))
	require.NoError(t, p.SetPayloadData(nil))

	assert.NotNil(t, p.HeaderData())
	assert.NotNil(t, p.PayloadData())
	assert.Zero(t, p.PacketLength())
}

// TestCustomPacketFinalizedKeepsData verifies that failed setters leave the buffers untouched
func TestCustomPacketFinalizedKeepsData(t *testing.T) {
	p := NewCustomPacket(Incoming)
	require.NoError(t, p.SetHeaderData([]byte{0x60}))
	require.NoError(t, p.SetPayloadData([]byte{0x80, 0x00}))
	p.FinalizePacket()

	assert.ErrorIs(t, p.SetHeaderData([]byte{}), ErrFinalizedPacket)
	assert.ErrorIs(t, p.SetPayloadData([]byte{}), ErrFinalizedPacket)
	assert.Equal(t, []byte{0x60, 0x80, 0x00}, p.PacketData())
}
