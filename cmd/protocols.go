package cmd

import (
	"fmt"
	"strconv"

	"github.com/mikaelmello/rawsock/core"
	"github.com/mikaelmello/rawsock/native"
	"github.com/spf13/cobra"
)

var protocolsCmd = &cobra.Command{
	Use:   "protocols [name|number]",
	Short: "list the system protocol directory or look up one protocol",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := core.NewSession(native.New(), currentSettings())
		if err != nil {
			return err
		}

		if len(args) == 0 {
			protocols, err := session.Protocols()
			if err != nil {
				return err
			}
			return printProtocols(protocols)
		}

		p, found, err := lookupProtocol(session, args[0])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("protocol %s not found", args[0])
		}
		return printProtocols([]core.Protocol{p})
	},
}

func init() {
	rootCmd.AddCommand(protocolsCmd)
}

// lookupProtocol looks query up as a protocol number if it is numeric, by name otherwise.
func lookupProtocol(session *core.Session, query string) (core.Protocol, bool, error) {
	if number, err := strconv.Atoi(query); err == nil {
		return session.ProtocolByNumber(number)
	}
	return session.ProtocolByName(query)
}
