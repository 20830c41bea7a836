package cmd

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/mikaelmello/rawsock/core"
	"github.com/pterm/pterm"
)

func printOnOpen(s *core.Session) {
	fmt.Printf("RAWSOCK %s socket %d\n", s.IPVersion(), s.Handle())
}

func printOnSend(s *core.Session, p core.Packet, n int, seq int) {
	fmt.Printf("%d bytes to %s: icmp_seq=%d\n", n, p.DestinationAddress(), seq)
}

func printOnReply(s *core.Session, p *core.CustomPacket, seq int, rtt time.Duration) {
	fmt.Printf("%d bytes from %s: icmp_seq=%d ttl=%d time=%s\n",
		p.PayloadLength(), p.SourceAddress(), seq, p.HopLimit(), rtt.Truncate(time.Microsecond))
}

func printOnTimeout(s *core.Session, dst net.IP, seq int) {
	fmt.Printf("0 bytes from %s: icmp_seq=%d timeout expired\n", dst, seq)
}

func printOnReceive(s *core.Session, p *core.CustomPacket) {
	desc := ""
	if m, err := core.ParseICMP(s.IPVersion(), p); err == nil {
		desc = fmt.Sprintf(" icmp type=%v code=%d", m.Type, m.Code)
	}

	fmt.Printf("%d bytes from %s to %s: header=%d payload=%d ttl=%d%s\n",
		p.PacketLength(), p.SourceAddress(), p.DestinationAddress(),
		p.HeaderLength(), p.PayloadLength(), p.HopLimit(), desc)
}

func printOnClose(s *core.Session) {
	fmt.Printf("--- %d packets sent (%d bytes), %d received (%d bytes), %d send failures, %d timeouts ---\n",
		s.Stats.GetTotalSent(), s.Stats.GetBytesSent(), s.Stats.GetTotalRecv(), s.Stats.GetBytesRecv(),
		s.Stats.GetTotalSendFailed(), s.Stats.GetTotalTimedOut())
}

// printOptions renders the effective options of the session socket, an option the platform refuses
// is shown with its error instead of failing the whole table.
func printOptions(s *core.Session) error {
	data := pterm.TableData{{"Option", "Value"}}

	data = append(data, []string{"ip version", s.IPVersion().String()})
	data = append(data, []string{"select timeout", strconv.FormatBool(s.UseSelectTimeout())})
	data = append(data, optionRow("header include", func() (string, error) {
		on, err := s.IPHeaderInclude()
		return strconv.FormatBool(on), err
	}))
	data = append(data, optionRow("send buffer", intOption(s.SendBufferSize)))
	data = append(data, optionRow("receive buffer", intOption(s.ReceiveBufferSize)))
	data = append(data, optionRow("send timeout (ms)", intOption(s.SendTimeout)))
	data = append(data, optionRow("receive timeout (ms)", intOption(s.ReceiveTimeout)))

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printProtocols(protocols []core.Protocol) error {
	data := pterm.TableData{{"Number", "Name", "Aliases"}}
	for _, p := range protocols {
		data = append(data, []string{strconv.Itoa(p.Number), p.Name, strings.Join(p.Aliases, " ")})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func intOption(get func() (int, error)) func() (string, error) {
	return func() (string, error) {
		v, err := get()
		return strconv.Itoa(v), err
	}
}

func optionRow(name string, get func() (string, error)) []string {
	v, err := get()
	if err != nil {
		return []string{name, "error: " + err.Error()}
	}
	return []string{name, v}
}
