package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeClipboard struct{ copied []string }

func (c *fakeClipboard) Copy(text string) error {
	c.copied = append(c.copied, text)
	return nil
}

// isolate points storage and config at temp dirs and returns the list dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "lists")
	t.Setenv("TODO_DIR", dir)
	t.Setenv("TODO_CONFIG_DIR", t.TempDir())
	t.Setenv("TODO_PROMPT", "")
	t.Setenv("TODO_LOG_LEVEL", "")
	t.Setenv("NO_COLOR", "1")
	return dir
}

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()
	return runCLIWith(t, &App{Clipboard: &fakeClipboard{}}, "", args)
}

func runCLIWith(t *testing.T, app *App, stdin string, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := newRootCmd(app)

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: todo %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, stderr, stdout)
	}
	return string(stdout)
}

func TestRoot_NoArgsPrintsUsage(t *testing.T) {
	isolate(t)
	for _, args := range [][]string{{}, {"frobnicate"}, {"--eval"}} {
		out := mustRun(t, args...)
		if !strings.HasPrefix(out, "Usage:\n  todo add <task> to <list>") {
			t.Fatalf("todo %v: expected full usage; got:\n%s", args, out)
		}
	}
}

func TestCLI_AddListRemove(t *testing.T) {
	dir := isolate(t)

	mustRun(t, "add", "buy", "milk", "to", "groceries")
	mustRun(t, "add", "--urgent", "eggs", "to", "groceries")

	b, err := os.ReadFile(filepath.Join(dir, "groceries.txt"))
	if err != nil {
		t.Fatalf("read list file: %v", err)
	}
	if string(b) != "buy milk\n--urgent eggs\n" {
		t.Fatalf("unexpected file contents: %q", b)
	}

	out := mustRun(t, "list", "groceries")
	if out != "Tasks in list 'groceries':\n1. buy milk\n2. --urgent eggs\n" {
		t.Fatalf("unexpected listing: %q", out)
	}

	mustRun(t, "remove", "1", "from", "groceries")
	out = mustRun(t, "list")
	if out != "Available todo lists:\n- groceries\n" {
		t.Fatalf("history db must not show up as a list; got %q", out)
	}

	out = mustRun(t, "history", "groceries")
	if !strings.Contains(out, "remove") || !strings.Contains(out, "#1 buy milk") {
		t.Fatalf("expected remove event in history; got:\n%s", out)
	}
}

func TestCLI_UserErrorsExitZero(t *testing.T) {
	isolate(t)
	mustRun(t, "add", "x", "to", "work")

	cases := []struct {
		args []string
		want string
	}{
		{args: []string{"remove", "one", "from", "work"}, want: "Error: Invalid task number"},
		{args: []string{"remove", "1", "work"}, want: "Usage: todo remove <num> from <list>"},
		{args: []string{"edit", "1", "work"}, want: "Usage: todo edit <num> in <list> <new_text>"},
		{args: []string{"cleanup"}, want: "Usage: todo cleanup <list>"},
		{args: []string{"add"}, want: "Usage: todo add <task> [to <list>]"},
		{args: []string{"remove", "5", "from", "work"}, want: "Error: Invalid task number"},
		{args: []string{"list", "nope"}, want: "List 'nope' not found."},
	}
	for _, tc := range cases {
		stdout, _, err := runCLI(t, tc.args)
		if err != nil {
			t.Fatalf("todo %v: expected success, got %v", tc.args, err)
		}
		if !strings.Contains(string(stdout), tc.want) {
			t.Fatalf("todo %v: expected %q; got:\n%s", tc.args, tc.want, stdout)
		}
	}
}

func TestCLI_EvalAnywhere(t *testing.T) {
	isolate(t)
	target := t.TempDir()
	mustRun(t, "add", "t", "to", "work")
	mustRun(t, "tag", target, "1", "in", "work")

	for _, args := range [][]string{
		{"--eval", "use", "1", "in", "work"},
		{"use", "--eval", "1", "in", "work"},
		{"use", "1", "in", "work", "--eval"},
	} {
		out := mustRun(t, args...)
		if !strings.HasPrefix(out, "cd ") || strings.Contains(out, "\n") {
			t.Fatalf("todo %v: expected bare cd command; got %q", args, out)
		}
	}
}

func TestCLI_EvalIsTaskTextOutsideUse(t *testing.T) {
	dir := isolate(t)

	mustRun(t, "add", "fix", "--eval", "flag", "to", "work")
	mustRun(t, "add", "placeholder", "to", "work")
	mustRun(t, "edit", "2", "in", "work", "document", "--eval")

	b, err := os.ReadFile(filepath.Join(dir, "work.txt"))
	if err != nil {
		t.Fatalf("read list file: %v", err)
	}
	if string(b) != "fix --eval flag\ndocument --eval\n" {
		t.Fatalf("expected --eval kept in task text; got %q", b)
	}
}

func TestCLI_UseCopiesToClipboard(t *testing.T) {
	isolate(t)
	target := t.TempDir()
	clip := &fakeClipboard{}
	app := &App{Clipboard: clip}

	for _, args := range [][]string{
		{"add", "t", "to", "work"},
		{"tag", target, "1", "in", "work"},
	} {
		if _, _, err := runCLIWith(t, app, "", args); err != nil {
			t.Fatalf("todo %v: %v", args, err)
		}
	}

	stdout, _, err := runCLIWith(t, app, "", []string{"use", "1", "in", "work"})
	if err != nil {
		t.Fatalf("use: %v", err)
	}
	if !strings.Contains(string(stdout), "(already copied to clipboard)") {
		t.Fatalf("expected clipboard note; got:\n%s", stdout)
	}
	if len(clip.copied) != 1 || !strings.HasPrefix(clip.copied[0], "cd ") {
		t.Fatalf("expected cd command on clipboard; got %v", clip.copied)
	}
}

func TestCLI_InteractiveAddReadsStdin(t *testing.T) {
	dir := isolate(t)

	stdout, _, err := runCLIWith(t, &App{}, "\n", []string{"add", "call", "mom"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(string(stdout), "1. default") {
		t.Fatalf("expected default to be offered; got:\n%s", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "default.txt")); err != nil {
		t.Fatalf("expected default list to be created: %v", err)
	}

	stdout, _, err = runCLIWith(t, &App{}, "!q\n", []string{"add", "never"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(string(stdout), "Operation cancelled") {
		t.Fatalf("expected cancel message; got:\n%s", stdout)
	}
}

func TestCLI_ConfigFile(t *testing.T) {
	isolate(t)
	cfgDir := t.TempDir()
	listDir := filepath.Join(t.TempDir(), "from-config")
	t.Setenv("TODO_CONFIG_DIR", cfgDir)
	t.Setenv("TODO_DIR", "")
	cfg := "dir: " + listDir + "\nhistory_limit: 5\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	mustRun(t, "add", "x", "to", "work")
	if _, err := os.Stat(filepath.Join(listDir, "work.txt")); err != nil {
		t.Fatalf("expected list under configured dir: %v", err)
	}
}

func TestCLI_BadConfigIsFatal(t *testing.T) {
	isolate(t)
	t.Setenv("TODO_PROMPT", "carrier-pigeon")

	_, _, err := runCLI(t, []string{"list"})
	if err == nil {
		t.Fatalf("expected an error for an unknown prompt kind")
	}
}
