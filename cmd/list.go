package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simon/screenctl/internal/session"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List screen sessions",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newCLIApp(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer a.Close()

		items := a.source.Children(cmd.Context())
		out := cmd.OutOrStdout()
		if len(items) == 1 && !items[0].Actionable() {
			return session.ErrUnsupported
		}
		if len(items) == 0 {
			fmt.Fprintln(out, "No screen sessions.")
			return a.done("list")
		}

		fmt.Fprint(out, formatItems(items))
		return a.done("list")
	},
}

// formatItems renders session items as ID, NAME and STATE columns.
func formatItems(items []session.Item) string {
	idWidth, nameWidth := len("ID"), len("NAME")
	for _, item := range items {
		idWidth = max(idWidth, len(item.Key()))
		nameWidth = max(nameWidth, len(item.Label()))
	}

	s := fmt.Sprintf("%-*s  %-*s  %s\n", idWidth, "ID", nameWidth, "NAME", "STATE")
	for _, item := range items {
		state := "detached"
		if item.Icon() == session.IconOpen {
			state = "attached"
		}
		s += fmt.Sprintf("%-*s  %-*s  %s\n", idWidth, item.Key(), nameWidth, item.Label(), state)
	}
	return s
}

func init() {
	rootCmd.AddCommand(listCmd)
}
