package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a screen session and attach to it",
	Long:  "Creates a detached screen session and attaches to it. Without a name you are asked for one.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newCLIApp(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer a.Close()

		noAttach, _ := cmd.Flags().GetBool("no-attach")
		a.actions.Detached = noAttach

		if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
			a.actions.Create(cmd.Context(), args[0])
		} else {
			a.actions.PromptCreate(cmd.Context())
		}
		return a.done("new")
	},
}

func init() {
	newCmd.Flags().BoolP("no-attach", "d", false, "Create the session without attaching")
	rootCmd.AddCommand(newCmd)
}
