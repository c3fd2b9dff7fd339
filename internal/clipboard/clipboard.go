// Package clipboard copies text to the system clipboard on a best-effort basis.
package clipboard

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

// Copier puts text on the clipboard. Callers treat any error as "not copied".
type Copier interface {
	Copy(text string) error
}

// System tries each helper command in order, then the platform clipboard.
type System struct {
	// Helpers are shell-like command lines that read the text from stdin.
	Helpers []string

	lookPath func(string) (string, error)
	run      func(name string, args []string, stdin string) error
	fallback func(string) error
}

func NewSystem(helpers []string) *System {
	return &System{
		Helpers:  helpers,
		lookPath: exec.LookPath,
		run:      runClipboardCmd,
		fallback: clipboard.WriteAll,
	}
}

func (s *System) Copy(text string) error {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var errs []error
	for _, h := range s.Helpers {
		argv := splitShellWords(h)
		if len(argv) == 0 {
			continue
		}
		if _, err := s.lookPath(argv[0]); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.run(argv[0], argv[1:], text); err != nil {
			errs = append(errs, err)
			continue
		}
		return nil
	}
	if s.fallback != nil {
		err := s.fallback(text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return errors.New("clipboard: no helpers configured")
	}
	return errors.Join(errs...)
}

func runClipboardCmd(name string, args []string, stdin string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	if err := cmd.Run(); err != nil {
		return errors.New(name + ": " + err.Error())
	}
	return nil
}
