package cmd

import (
	"fmt"
	"math/rand"
	"net"
	"time"

	"github.com/mikaelmello/rawsock/core"
	"github.com/spf13/cobra"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

var (
	sendCount    int
	sendSize     int
	sendInterval float64
	sendNoWait   bool
)

var sendCmd = &cobra.Command{
	Use:   "send <destination>",
	Short: "send ICMP echo requests through a raw socket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := currentSettings()
		if settings.HeaderInclude {
			return fmt.Errorf("send builds the payload only, it cannot be used with --hdrincl")
		}
		if sendCount < 1 {
			return fmt.Errorf("count must be at least 1, got %d", sendCount)
		}
		if sendSize < 0 {
			return fmt.Errorf("size cannot be negative, got %d", sendSize)
		}

		dst, err := resolve(args[0], settings.IPVersion)
		if err != nil {
			return err
		}
		settings.Protocol = core.ICMPProtocol(settings.IPVersion)

		session, err := openSession(settings)
		if err != nil {
			return err
		}
		defer session.Close()

		printOnOpen(session)

		id := rand.New(rand.NewSource(time.Now().UnixNano())).Intn(0xffff)
		data := make([]byte, sendSize)
		interval := time.Duration(sendInterval * float64(time.Second))

		for seq := 1; seq <= sendCount; seq++ {
			if err := sendEcho(session, dst, id, seq, data); err != nil {
				return err
			}
			if seq < sendCount {
				time.Sleep(interval)
			}
		}

		printOnClose(session)
		return nil
	},
}

func init() {
	flags := sendCmd.Flags()
	flags.IntVarP(&sendCount, "count", "c", 1, "number of echo requests to send")
	flags.IntVarP(&sendSize, "size", "s", 56, "number of data bytes in each echo request")
	flags.Float64VarP(&sendInterval, "interval", "i", 1, "seconds between two echo requests")
	flags.BoolVar(&sendNoWait, "no-wait", false, "do not wait for echo replies")
	rootCmd.AddCommand(sendCmd)
}

// resolve returns the address of host for the given IP version.
func resolve(host string, version core.IPVersion) (net.IP, error) {
	network := "ip4"
	if version == core.IPv6 {
		network = "ip6"
	}

	addr, err := net.ResolveIPAddr(network, host)
	if err != nil {
		return nil, fmt.Errorf("error while resolving address %s: %w", host, err)
	}
	return addr.IP, nil
}

// sendEcho sends one echo request and, unless disabled, waits for its reply.
func sendEcho(session *core.Session, dst net.IP, id, seq int, data []byte) error {
	p, err := core.NewEchoRequest(dst, id, seq, data)
	if err != nil {
		return err
	}

	start := time.Now()
	n, err := session.Send(p)
	if err != nil {
		return fmt.Errorf("error while sending echo request: %w", err)
	}
	printOnSend(session, p, n, seq)

	if sendNoWait {
		return nil
	}

	var deadline time.Time
	if ms, err := session.ReceiveTimeout(); err == nil && ms > 0 {
		deadline = start.Add(time.Duration(ms) * time.Millisecond)
	}

	reply, err := waitEchoReply(session, id, seq, deadline)
	if err != nil {
		return err
	}
	if reply == nil {
		printOnTimeout(session, dst, seq)
		return nil
	}

	printOnReply(session, reply, seq, time.Since(start))
	return nil
}

// waitEchoReply receives until the reply matching id and seq arrives. It returns nil when a receive
// times out or the deadline, if any, passes.
func waitEchoReply(session *core.Session, id, seq int, deadline time.Time) (*core.CustomPacket, error) {
	for deadline.IsZero() || time.Now().Before(deadline) {
		p, err := session.Receive()
		if err != nil {
			if core.IsTimeout(err) {
				return nil, nil
			}
			return nil, err
		}

		m, err := core.ParseICMP(session.IPVersion(), p)
		if err != nil {
			continue
		}

		echo, ok := m.Body.(*icmp.Echo)
		if !ok || !isEchoReply(m) {
			continue
		}
		if echo.ID == id && echo.Seq == seq {
			return p, nil
		}
	}
	return nil, nil
}

func isEchoReply(m *icmp.Message) bool {
	return m.Type == ipv4.ICMPTypeEchoReply || m.Type == ipv6.ICMPTypeEchoReply
}
