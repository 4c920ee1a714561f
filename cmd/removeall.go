package cmd

import (
	"github.com/spf13/cobra"

	"github.com/simon/screenctl/internal/session"
)

var removeAllCmd = &cobra.Command{
	Use:   "remove-all",
	Short: "Quit every screen session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var prompter session.Prompter
		if yes, _ := cmd.Flags().GetBool("yes"); yes {
			prompter = answerPrompter{}
		}

		a, err := newCLIApp(cmd.Context(), prompter)
		if err != nil {
			return err
		}
		defer a.Close()

		a.actions.RemoveAll(cmd.Context())
		return a.done("remove-all")
	},
}

func init() {
	removeAllCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(removeAllCmd)
}
