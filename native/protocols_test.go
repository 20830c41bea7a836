package native

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mikaelmello/rawsock/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const protocolsFixture = `# Internet (IP) protocols
#
ip	0	IP		# internet protocol, pseudo protocol number
icmp	1	ICMP		# internet control message protocol
tcp	6	TCP		# transmission control protocol
udp	17	UDP		# user datagram protocol

ipv6-icmp 58	IPv6-ICMP	# ICMP for IPv6
broken
bogus	x	BOGUS
toolarge	300	BIG
`

func TestParseProtocols(t *testing.T) {
	protocols, err := parseProtocols(strings.NewReader(protocolsFixture))
	require.NoError(t, err)

	assert.Equal(t, []core.Protocol{
		{Name: "ip", Aliases: []string{"IP"}, Number: 0},
		{Name: "icmp", Aliases: []string{"ICMP"}, Number: 1},
		{Name: "tcp", Aliases: []string{"TCP"}, Number: 6},
		{Name: "udp", Aliases: []string{"UDP"}, Number: 17},
		{Name: "ipv6-icmp", Aliases: []string{"IPv6-ICMP"}, Number: 58},
	}, protocols)
}

func TestParseProtocolsEmpty(t *testing.T) {
	protocols, err := parseProtocols(strings.NewReader("# nothing here\n\n"))
	assert.NoError(t, err)
	assert.Empty(t, protocols)
}

func writeProtocols(t *testing.T) *ProtocolFile {
	t.Helper()

	path := filepath.Join(t.TempDir(), "protocols")
	require.NoError(t, os.WriteFile(path, []byte(protocolsFixture), 0o600))
	return NewProtocolFile(path)
}

func TestProtocolFileByName(t *testing.T) {
	f := writeProtocols(t)

	p, ok, err := f.ProtocolByName("udp")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 17, p.Number)

	p, ok, err = f.ProtocolByName("IPv6-ICMP")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ipv6-icmp", p.Name)

	_, ok, err = f.ProtocolByName("sctp")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestProtocolFileByNumber(t *testing.T) {
	f := writeProtocols(t)

	p, ok, err := f.ProtocolByNumber(1)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "icmp", p.Name)

	_, ok, err = f.ProtocolByNumber(132)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestProtocolFileMissing(t *testing.T) {
	f := NewProtocolFile(filepath.Join(t.TempDir(), "missing"))

	_, err := f.Protocols()

	var nativeErr *core.NativeError
	require.ErrorAs(t, err, &nativeErr)
	assert.Equal(t, "getprotoent", nativeErr.Op)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
