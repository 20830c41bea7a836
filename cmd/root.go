package cmd

import (
	"github.com/mikaelmello/rawsock/core"
	"github.com/mikaelmello/rawsock/native"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "rawsock",
	Short:        "rawsock drives IP-layer raw sockets",
	Long:         "rawsock opens raw IP sockets, configures their options and sends or receives raw packets",
	SilenceUsage: true,
}

// globalSettings are the settings shared by all subcommands, bound to the persistent flags.
var globalSettings = core.DefaultSettings()

var (
	useIPv6 bool
	verbose bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&useIPv6, "ipv6", "6", false, "use IPv6 raw sockets")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&globalSettings.UseSelectTimeout, "select-timeout", globalSettings.UseSelectTimeout,
		"enforce timeouts by polling the socket instead of SO_SNDTIMEO/SO_RCVTIMEO")
	flags.BoolVar(&globalSettings.HeaderInclude, "hdrincl", false, "caller supplies the IP header (IP_HDRINCL)")
	flags.IntVarP(&globalSettings.HopLimit, "ttl", "t", globalSettings.HopLimit, "unicast TTL / hop limit of the socket")
	flags.IntVar(&globalSettings.SendBufferSize, "sndbuf", 0, "SO_SNDBUF size in bytes, 0 keeps the OS default")
	flags.IntVar(&globalSettings.ReceiveBufferSize, "rcvbuf", 0, "SO_RCVBUF size in bytes, 0 keeps the OS default")
	flags.IntVar(&globalSettings.SendTimeout, "send-timeout", 0, "send timeout in milliseconds, 0 disables it")
	flags.IntVarP(&globalSettings.ReceiveTimeout, "timeout", "W", 1000, "receive timeout in milliseconds")
	flags.IntVarP(&globalSettings.Protocol, "protocol", "p", -1, "IP protocol number, defaults to ICMP of the IP version")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// currentSettings completes the flag-bound settings with the values derived from other flags.
func currentSettings() *core.Settings {
	settings := *globalSettings

	settings.IPVersion = core.IPv4
	if useIPv6 {
		settings.IPVersion = core.IPv6
	}
	if settings.Protocol < 0 {
		settings.Protocol = core.ICMPProtocol(settings.IPVersion)
	}
	if verbose {
		settings.LoggingLevel = uint32(log.DebugLevel)
	}

	return &settings
}

// openSession creates a session on the host raw socket capability and opens its socket.
func openSession(settings *core.Settings) (*core.Session, error) {
	session, err := core.NewSession(native.New(), settings)
	if err != nil {
		return nil, err
	}

	if err := session.Open(); err != nil {
		return nil, err
	}

	return session, nil
}
