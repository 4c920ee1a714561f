package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var killCmd = &cobra.Command{
	Use:   "kill <session>",
	Short: "Kill a screen session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompter := newLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		a, err := newCLIApp(cmd.Context(), prompter)
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force && !prompter.Confirm(cmd.Context(), fmt.Sprintf("Kill session %q?", sess.ID)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		a.actions.Kill(cmd.Context(), sess)
		return a.done("kill")
	},
}

func init() {
	killCmd.Flags().BoolP("force", "f", false, "Skip confirmation")
	rootCmd.AddCommand(killCmd)
}
