package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <session> <text...>",
	Short: "Type text followed by Enter into a screen session",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newCLIApp(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		a.actions.Send(cmd.Context(), sess, strings.Join(args[1:], " "))
		return a.done("send")
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
