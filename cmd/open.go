package cmd

import (
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:     "open <session>",
	Aliases: []string{"attach", "a"},
	Short:   "Attach to a screen session, detaching it elsewhere",
	Long:    "Attaches to a session by ID (12345.name), name, or pid. Returns when you detach.",
	Args:    cobra.ExactArgs(1),
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
		a.actions.Open(cmd.Context(), sess)
		return a.done("open")
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
