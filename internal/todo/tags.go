package todo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"todo-cli/internal/clipboard"
	"todo-cli/internal/model"
	"todo-cli/internal/record"
	"todo-cli/internal/store"
)

// Tag attaches a path to task num. An empty file tags the working directory.
func (a App) Tag(ctx context.Context, file string, num int, list string) error {
	list, ok := a.listName(list)
	if !ok {
		return nil
	}
	if !a.Store.Exists(list) {
		a.notFound(list)
		return nil
	}

	path, err := a.resolveTagPath(file)
	if err != nil {
		return err
	}
	if strings.Contains(path, record.TagSeparator) {
		a.printf("Error: path cannot contain '%s': %s\n", record.TagSeparator, path)
		return nil
	}
	if strings.TrimSpace(path) != path {
		a.printf("Error: path cannot start or end with whitespace: %q\n", path)
		return nil
	}

	items, err := a.Store.Load(list)
	if err != nil {
		return err
	}
	if num < 1 || num > len(items) {
		a.invalidTaskNumber()
		return nil
	}

	items[num-1].AddTag(path)
	if err := a.Store.Save(list, items); err != nil {
		return err
	}
	a.printf("Tagged task %d in list '%s' with '%s'\n", num, list, path)
	a.record(ctx, store.Event{Type: store.EventTag, List: list, Task: num, Detail: path})
	return nil
}

// resolveTagPath turns the tag operand into an absolute path. A bare file
// name is taken relative to the working directory, with stray quotes removed.
func (a App) resolveTagPath(file string) (string, error) {
	cwd, err := a.getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	if file == "" {
		return cwd, nil
	}
	if !strings.ContainsAny(file, `/\`) {
		return filepath.Join(cwd, strings.Trim(file, `"`)), nil
	}
	if filepath.IsAbs(file) {
		return filepath.Clean(file), nil
	}
	return filepath.Join(cwd, file), nil
}

// tagChoice is the outcome of picking a tag for `use`.
type tagChoice int

const (
	tagNone tagChoice = iota
	tagSelected
	tagNeedsSelection
	tagOutOfRange
)

// chooseTag applies the selection rules: a single tag is picked automatically,
// several tags need an explicit 1-based number.
func chooseTag(tags []string, tagNum int) (string, tagChoice) {
	switch {
	case len(tags) == 0:
		return "", tagNone
	case tagNum == 0 && len(tags) == 1:
		return tags[0], tagSelected
	case tagNum == 0:
		return "", tagNeedsSelection
	case tagNum < 1 || tagNum > len(tags):
		return "", tagOutOfRange
	default:
		return tags[tagNum-1], tagSelected
	}
}

// Use acts on one of task num's tags: a directory yields a cd command, a file
// yields its path, and a missing path offers to drop the stale tag.
func (a App) Use(ctx context.Context, num, tagNum int, list string) error {
	list, ok := a.listName(list)
	if !ok {
		return nil
	}
	items, err := a.Store.Load(list)
	if errors.Is(err, store.ErrListNotFound) {
		a.notFound(list)
		return nil
	}
	if err != nil {
		return err
	}
	if num < 1 || num > len(items) {
		a.invalidTaskNumber()
		return nil
	}

	it := items[num-1]
	path, choice := chooseTag(it.Tags, tagNum)
	switch choice {
	case tagNone:
		a.printf("No tags found for task %d.\n", num)
		return nil
	case tagNeedsSelection:
		a.println("Multiple tags available. Please specify tag number:")
		a.printTags(it.Tags)
		return nil
	case tagOutOfRange:
		a.println("Invalid tag number. Available tags:")
		a.printTags(it.Tags)
		return nil
	}

	st, err := os.Stat(path)
	if err != nil {
		return a.offerStaleTagRemoval(ctx, items, num, list, path)
	}
	switch {
	case st.IsDir():
		a.useDir(num, tagNum, list, path)
	case st.Mode().IsRegular():
		a.useFile(path)
	default:
		a.printf("Selected path is not a regular file or directory: %s\n", path)
	}
	return nil
}

func (a App) printTags(tags []string) {
	for i, t := range tags {
		a.printf("%d. %s\n", i+1, t)
	}
}

func (a App) offerStaleTagRemoval(ctx context.Context, items []model.Item, num int, list, path string) error {
	a.printf("%s %s\n", a.Styles.Warn("Warning: Path does not exist:"), path)
	if a.Prompt == nil {
		return nil
	}
	yes, err := a.Prompt.Confirm("Would you like to remove this tag? (y/N)")
	if err != nil {
		return fmt.Errorf("confirm tag removal: %w", err)
	}
	if !yes {
		return nil
	}
	items[num-1].RemoveTag(path)
	if err := a.Store.Save(list, items); err != nil {
		return err
	}
	a.println("Tag removed.")
	a.record(ctx, store.Event{Type: store.EventUntag, List: list, Task: num, Detail: path})
	return nil
}

func (a App) useDir(num, tagNum int, list, path string) {
	cdCommand := "cd " + clipboard.Quote(path)
	if a.Eval {
		a.printf("%s", cdCommand)
		return
	}

	copied := a.copyToClipboard(cdCommand)
	note := ""
	if copied {
		note = " (already copied to clipboard)"
	}
	evalArgs := fmt.Sprintf("%d", num)
	if tagNum > 0 {
		evalArgs = fmt.Sprintf("%d %d", num, tagNum)
	}
	a.println("\nTo change directory, either:")
	a.printf("1. Copy and paste this command%s:\n", note)
	a.printf("   %s\n", cdCommand)
	a.printf("2. Or use: eval $(%s use --eval %s in %s)\n", ProgramName, evalArgs, list)
}

func (a App) useFile(path string) {
	copied := a.copyToClipboard(path)
	a.printf("Selected path is a file: %s\n", path)
	if copied {
		a.println("File path copied to clipboard!")
	}
}
