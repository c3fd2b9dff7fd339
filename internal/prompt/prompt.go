// Package prompt asks the user to make choices that commands cannot infer.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultList is used when the user accepts the list prompt without typing.
const DefaultList = "default"

// CancelInput aborts the list prompt.
const CancelInput = "!q"

// Prompter is the decision provider used by interactive commands.
type Prompter interface {
	// ChooseList picks a target list from lists. ok is false when the user cancels.
	ChooseList(lists []string) (name string, ok bool, err error)
	// Confirm asks a yes/no question; anything other than "y" means no.
	Confirm(question string) (bool, error)
}

// Line prompts on a text stream, one answer per line.
type Line struct {
	In  *bufio.Reader
	Out io.Writer
}

func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{In: bufio.NewReader(in), Out: out}
}

func (p *Line) ChooseList(lists []string) (string, bool, error) {
	fmt.Fprintln(p.Out, "\nAvailable lists:")
	for i, name := range lists {
		fmt.Fprintf(p.Out, "%d. %s\n", i+1, name)
	}
	fmt.Fprintf(p.Out, "\nEnter list number or name (press Enter for '%s', %s to cancel):\n", DefaultList, CancelInput)

	input, err := p.readLine()
	if err != nil {
		return "", false, err
	}
	return ResolveListAnswer(input, lists)
}

func (p *Line) Confirm(question string) (bool, error) {
	fmt.Fprintln(p.Out, question)
	input, err := p.readLine()
	if err != nil {
		return false, err
	}
	return strings.EqualFold(input, "y"), nil
}

// readLine returns the next trimmed line. EOF counts as an empty answer.
func (p *Line) readLine() (string, error) {
	s, err := p.In.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// ResolveListAnswer maps a typed answer to a list name: blank means DefaultList,
// a menu number picks that entry, CancelInput cancels, anything else is a name.
func ResolveListAnswer(input string, lists []string) (string, bool, error) {
	input = strings.TrimSpace(input)
	switch input {
	case CancelInput:
		return "", false, nil
	case "":
		return DefaultList, true, nil
	}
	if n, err := strconv.Atoi(input); err == nil && n > 0 && n <= len(lists) {
		return lists[n-1], true, nil
	}
	return input, true, nil
}
