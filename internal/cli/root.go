package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"todo-cli/internal/clipboard"
	"todo-cli/internal/logging"
	"todo-cli/internal/prompt"
	"todo-cli/internal/render"
	"todo-cli/internal/route"
	"todo-cli/internal/store"
	"todo-cli/internal/todo"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	// Eval is set by a leading --eval; verbs also accept it among their operands.
	Eval bool

	// Optional overrides, used by tests. Nil means "build from config".
	Prompt    prompt.Prompter
	Clipboard clipboard.Copier
	Getwd     func() (string, error)
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          todo.ProgramName,
		Short:        "Task lists in plain text files, with paths tagged to tasks",
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		Example: strings.TrimSpace(`
  # Add a task to a list (created on first use)
  todo add buy milk to groceries

  # Tag the current directory to task 2, then jump back to it later
  todo tag 2 in work
  eval $(todo use --eval 2 in work)
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No verb or an unknown one.
			fmt.Fprintln(cmd.OutOrStdout(), route.Usage())
			return nil
		},
	}
	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if u := route.VerbUsage(cmd.Name()); u != "" {
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), route.Usage())
	})

	cmd.PersistentFlags().BoolVar(&app.Eval, "eval", false, "Print a bare cd command for `use`, for eval $(...)")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newTagCmd(app))
	cmd.AddCommand(newUseCmd(app))
	cmd.AddCommand(newCleanupCmd(app))
	cmd.AddCommand(newHistoryCmd(app))

	return cmd
}

// loadApp wires config, storage and terminal helpers into the operations layer.
// The returned func flushes the logger.
func loadApp(cmd *cobra.Command, app *App, eval bool) (todo.App, func(), error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return todo.App{}, nil, err
	}

	log, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return todo.App{}, nil, fmt.Errorf("config: %w", err)
	}
	done := func() { _ = log.Sync() }

	st := store.Store{Dir: cfg.Dir}
	if err := st.Ensure(); err != nil {
		done()
		return todo.App{}, nil, fmt.Errorf("create list directory: %w", err)
	}
	log.Debug("store ready", zap.String("dir", st.Dir), zap.String("prompt", cfg.Prompt))

	out := cmd.OutOrStdout()
	ta := todo.App{
		Store:        st,
		Out:          out,
		Prompt:       app.Prompt,
		Clipboard:    app.Clipboard,
		History:      st.History(),
		Log:          log,
		Styles:       render.New(out),
		Eval:         eval || app.Eval,
		Getwd:        app.Getwd,
		HistoryLimit: cfg.HistoryLimit,
	}
	if ta.Prompt == nil {
		ta.Prompt = newPrompter(cfg.Prompt, cmd.InOrStdin(), out)
	}
	if ta.Clipboard == nil {
		ta.Clipboard = clipboard.NewSystem(cfg.Clipboard)
	}
	return ta, done, nil
}

func newPrompter(kind string, in io.Reader, out io.Writer) prompt.Prompter {
	if kind == store.PromptTUI && isTerminal(in) {
		return prompt.NewPicker(in, out)
	}
	return prompt.NewLine(in, out)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
