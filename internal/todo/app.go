// Package todo implements the list operations behind each command.
//
// Operations print their own user-facing messages and return an error only
// for I/O failures that should end the process.
package todo

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"todo-cli/internal/clipboard"
	"todo-cli/internal/prompt"
	"todo-cli/internal/render"
	"todo-cli/internal/route"
	"todo-cli/internal/store"

	"go.uber.org/zap"
)

// ProgramName is used in instructions printed to the user.
const ProgramName = "todo"

// Recorder is the history log the operations write to.
type Recorder interface {
	Append(ctx context.Context, ev store.Event) error
	Recent(ctx context.Context, list string, limit int) ([]store.Event, error)
}

// App is built once at startup and shared by every operation of one invocation.
type App struct {
	Store     store.Store
	Out       io.Writer
	Prompt    prompt.Prompter
	Clipboard clipboard.Copier
	History   Recorder
	Log       *zap.Logger
	Styles    *render.Styles

	// Eval makes Use print a bare cd command for shell evaluation.
	Eval bool
	// Getwd resolves the working directory for tag.
	Getwd        func() (string, error)
	HistoryLimit int
}

// Dispatch runs the operation for a parsed command.
func (a App) Dispatch(ctx context.Context, cmd route.Command) error {
	switch cmd.Kind {
	case route.KindAdd:
		return a.Add(ctx, cmd.Task, cmd.List)
	case route.KindAddPrompt:
		return a.AddInteractive(ctx, cmd.Task)
	case route.KindListNames:
		return a.ListNames()
	case route.KindListAll:
		return a.ListAll()
	case route.KindListTasks:
		return a.ListTasks(cmd.List)
	case route.KindRemove:
		return a.Remove(ctx, cmd.Num, cmd.List)
	case route.KindEdit:
		return a.Edit(ctx, cmd.Num, cmd.List, cmd.Text)
	case route.KindTag:
		return a.Tag(ctx, cmd.File, cmd.Num, cmd.List)
	case route.KindUse:
		return a.Use(ctx, cmd.Num, cmd.TagNum, cmd.List)
	case route.KindCleanup:
		return a.Cleanup(ctx, cmd.List)
	case route.KindHistory:
		return a.ShowHistory(ctx, cmd.List)
	default:
		return fmt.Errorf("unhandled command kind %v", cmd.Kind)
	}
}

func (a App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

func (a App) println(args ...any) {
	fmt.Fprintln(a.Out, args...)
}

func (a App) log() *zap.Logger {
	if a.Log == nil {
		return zap.NewNop()
	}
	return a.Log
}

func (a App) getwd() (string, error) {
	if a.Getwd != nil {
		return a.Getwd()
	}
	return os.Getwd()
}

// listName validates a user-supplied list name, printing the problem if any.
func (a App) listName(name string) (string, bool) {
	n, err := store.NormalizeListName(name)
	if err != nil {
		a.printf("Error: %v\n", err)
		return "", false
	}
	return n, true
}

// taskText reports whether text fits on one line of a list file, printing the
// problem if not.
func (a App) taskText(text string) bool {
	if strings.ContainsAny(text, "\r\n") {
		a.println("Error: task text cannot contain line breaks")
		return false
	}
	return true
}

func (a App) notFound(list string) {
	a.printf("List '%s' not found.\n", list)
}

func (a App) invalidTaskNumber() {
	a.println("Error: Invalid task number")
}

// record appends ev to the history log. Failures are logged, never returned.
func (a App) record(ctx context.Context, ev store.Event) {
	if a.History == nil {
		return
	}
	if err := a.History.Append(ctx, ev); err != nil {
		a.log().Warn("history append failed", zap.String("type", ev.Type), zap.String("list", ev.List), zap.Error(err))
	}
}

// copyToClipboard reports whether text reached the clipboard.
func (a App) copyToClipboard(text string) bool {
	if a.Clipboard == nil {
		return false
	}
	if err := a.Clipboard.Copy(text); err != nil {
		a.log().Debug("clipboard copy failed", zap.Error(err))
		return false
	}
	return true
}
