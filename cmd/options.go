package cmd

import (
	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "open a raw socket with the given flags and print its effective options",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(currentSettings())
		if err != nil {
			return err
		}
		defer session.Close()

		return printOptions(session)
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}
