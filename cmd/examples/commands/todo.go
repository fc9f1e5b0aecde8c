package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thesyncim/uicontracts/internal/tui"
)

func todoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "todo",
		Short: "Run the todo list in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			todos, err := tui.Run(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d todos, %d left\n", todos.Len(), todos.Remaining())
			return nil
		},
	}
}
