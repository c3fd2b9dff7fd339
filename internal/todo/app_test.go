package todo

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo-cli/internal/route"
	"todo-cli/internal/store"
)

type fakePrompter struct {
	listAnswer string
	listOK     bool
	confirm    bool

	offered  []string
	asked    []string
	chooseN  int
	confirmN int
}

func (p *fakePrompter) ChooseList(lists []string) (string, bool, error) {
	p.chooseN++
	p.offered = append([]string{}, lists...)
	return p.listAnswer, p.listOK, nil
}

func (p *fakePrompter) Confirm(question string) (bool, error) {
	p.confirmN++
	p.asked = append(p.asked, question)
	return p.confirm, nil
}

type fakeClipboard struct {
	copied []string
	fail   bool
}

func (c *fakeClipboard) Copy(text string) error {
	if c.fail {
		return errors.New("no clipboard helper")
	}
	c.copied = append(c.copied, text)
	return nil
}

type memHistory struct {
	events []store.Event
}

func (h *memHistory) Append(ctx context.Context, ev store.Event) error {
	h.events = append(h.events, ev)
	return nil
}

func (h *memHistory) Recent(ctx context.Context, list string, limit int) ([]store.Event, error) {
	var out []store.Event
	for i := len(h.events) - 1; i >= 0 && len(out) < limit; i-- {
		if list == "" || h.events[i].List == list {
			out = append(out, h.events[i])
		}
	}
	return out, nil
}

type testEnv struct {
	app     App
	out     *bytes.Buffer
	prompt  *fakePrompter
	clip    *fakeClipboard
	history *memHistory
	cwd     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		out:     &bytes.Buffer{},
		prompt:  &fakePrompter{listOK: true},
		clip:    &fakeClipboard{},
		history: &memHistory{},
		cwd:     t.TempDir(),
	}
	env.app = App{
		Store:        store.Store{Dir: filepath.Join(t.TempDir(), ".todo_lists")},
		Out:          env.out,
		Prompt:       env.prompt,
		Clipboard:    env.clip,
		History:      env.history,
		Getwd:        func() (string, error) { return env.cwd, nil },
		HistoryLimit: 20,
	}
	return env
}

// run parses args like the command line and dispatches them.
func (e *testEnv) run(t *testing.T, args ...string) string {
	t.Helper()
	e.out.Reset()
	if len(args) == 0 {
		t.Fatalf("run: no verb")
	}
	ops, eval := route.Operands(args[0], args[1:])
	app := e.app
	app.Eval = eval
	cmd, err := route.ParseVerb(args[0], ops)
	if err != nil {
		t.Fatalf("parse %q: %v", args, err)
	}
	if err := app.Dispatch(context.Background(), cmd); err != nil {
		t.Fatalf("dispatch %q: %v", args, err)
	}
	return e.out.String()
}

func (e *testEnv) fileContents(t *testing.T, list string) string {
	t.Helper()
	b, err := os.ReadFile(e.app.Store.ListPath(list))
	if err != nil {
		t.Fatalf("read %s: %v", list, err)
	}
	return string(b)
}

func mustContain(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("expected output to contain %q; got:\n%s", w, out)
		}
	}
}
