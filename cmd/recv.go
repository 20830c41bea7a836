package cmd

import (
	"github.com/spf13/cobra"
)

// pollTimeout is the receive timeout used when none is configured, so stop requests are noticed.
const pollTimeout = 200

var recvCount int

var recvCmd = &cobra.Command{
	Use:   "recv",
	Short: "receive raw packets and print them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := currentSettings()
		if settings.ReceiveTimeout == 0 {
			settings.ReceiveTimeout = pollTimeout
		}

		session, err := openSession(settings)
		if err != nil {
			return err
		}
		defer session.Close()

		printOnOpen(session)

		r := newRunner(session, printOnReceive, recvCount)
		r.Start()
		err = r.Wait()

		printOnClose(session)
		return err
	},
}

func init() {
	recvCmd.Flags().IntVarP(&recvCount, "count", "c", 0, "stop after receiving count packets")
	rootCmd.AddCommand(recvCmd)
}
