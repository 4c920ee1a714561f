package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/simon/screenctl/internal/session"
)

var renameCmd = &cobra.Command{
	Use:   "rename <session> [new-name]",
	Short: "Rename a screen session",
	Long:  "Renames a session. Without a new name you are asked for one, prefilled with the current name.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var prompter session.Prompter
		if len(args) == 2 {
			if invalid := session.ValidateSessionName(args[1]); invalid != "" {
				return errors.New(invalid)
			}
			prompter = answerPrompter{answer: args[1]}
		}

		a, err := newCLIApp(cmd.Context(), prompter)
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		a.actions.Rename(cmd.Context(), sess)
		return a.done("rename")
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
