package cli

import (
	"todo-cli/internal/route"

	"github.com/spf13/cobra"
)

// newVerbCmd builds a verb whose operands are parsed positionally by route.
// Flag parsing is off so task text starting with "-" passes through.
func newVerbCmd(app *App, verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:                verb,
		Short:              short,
		Long:               route.VerbUsage(verb),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerb(cmd, app, verb, args)
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	cmd := newVerbCmd(app, "add", "Add a task to a list")
	cmd.Example = "  todo add buy milk to groceries\n  todo add call mom"
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	cmd := newVerbCmd(app, "list", "Show lists, or the tasks of one list")
	cmd.Aliases = []string{"ls"}
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	cmd := newVerbCmd(app, "remove", "Remove a task by number")
	cmd.Aliases = []string{"rm"}
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	return newVerbCmd(app, "edit", "Replace the text of a task")
}

func newTagCmd(app *App) *cobra.Command {
	return newVerbCmd(app, "tag", "Attach a file or directory to a task")
}

func newUseCmd(app *App) *cobra.Command {
	cmd := newVerbCmd(app, "use", "Act on a tagged path: cd into a directory or copy a file path")
	cmd.Example = "  eval $(todo use --eval 1 in work)"
	return cmd
}

func newCleanupCmd(app *App) *cobra.Command {
	return newVerbCmd(app, "cleanup", "Delete a list")
}

func newHistoryCmd(app *App) *cobra.Command {
	return newVerbCmd(app, "history", "Show recent changes")
}

func runVerb(cmd *cobra.Command, app *App, verb string, args []string) error {
	ops, eval := route.Operands(verb, args)
	c, err := route.ParseVerb(verb, ops)
	if err != nil {
		return reportUserError(cmd, err)
	}

	ta, done, err := loadApp(cmd, app, eval)
	if err != nil {
		return err
	}
	defer done()

	return ta.Dispatch(cmd.Context(), c)
}
