package todo

import (
	"context"
	"errors"
	"fmt"

	"todo-cli/internal/model"
	"todo-cli/internal/prompt"
	"todo-cli/internal/record"
	"todo-cli/internal/render"
	"todo-cli/internal/store"
)

func (a App) Add(ctx context.Context, task, list string) error {
	if !a.taskText(task) {
		return nil
	}
	list, ok := a.listName(list)
	if !ok {
		return nil
	}
	if err := a.Store.Append(list, model.NewItem(task)); err != nil {
		return err
	}
	num := 0
	if lines, err := a.Store.ReadLines(list); err == nil {
		num = len(lines)
	}
	a.printf("Task added to list '%s': %s\n", list, task)
	a.record(ctx, store.Event{Type: store.EventAdd, List: list, Task: num, Detail: task})
	return nil
}

// AddInteractive asks which list to add task to.
func (a App) AddInteractive(ctx context.Context, task string) error {
	if !a.taskText(task) {
		return nil
	}
	lists, err := a.Store.Lists()
	if err != nil {
		return err
	}
	if len(lists) == 0 {
		lists = []string{prompt.DefaultList}
	}
	if a.Prompt == nil {
		return errors.New("no prompter configured")
	}
	name, ok, err := a.Prompt.ChooseList(lists)
	if err != nil {
		return fmt.Errorf("choose list: %w", err)
	}
	if !ok {
		a.println("Operation cancelled")
		return nil
	}
	return a.Add(ctx, task, name)
}

func (a App) ListNames() error {
	lists, err := a.Store.Lists()
	if err != nil {
		return err
	}
	a.println(a.Styles.Heading("Available todo lists:"))
	for _, name := range lists {
		a.printf("- %s\n", name)
	}
	return nil
}

func (a App) ListAll() error {
	lists, err := a.Store.Lists()
	if err != nil {
		return err
	}
	if len(lists) == 0 {
		a.println("No todo lists found.")
		return nil
	}

	a.printf("\n%s\n", a.Styles.Heading("=== All Todo Lists ==="))
	for _, name := range lists {
		a.printf("\n📋 %s\n", a.Styles.ListName(name))
		a.println("-------------------")

		lines, err := a.Store.ReadLines(name)
		if err != nil && !errors.Is(err, store.ErrListNotFound) {
			return err
		}
		if len(lines) == 0 {
			a.printf("  %s\n", a.Styles.Muted("(empty)"))
			continue
		}
		for i, line := range lines {
			a.printf("  %d. %s\n", i+1, line)
		}
	}
	return nil
}

func (a App) ListTasks(list string) error {
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
	a.printf("Tasks in list '%s':\n", list)
	for i, it := range items {
		a.printf("%d. %s\n", i+1, record.Encode(it))
	}
	return nil
}

// Remove deletes the raw line for task num.
func (a App) Remove(ctx context.Context, num int, list string) error {
	list, ok := a.listName(list)
	if !ok {
		return nil
	}
	lines, err := a.Store.ReadLines(list)
	if errors.Is(err, store.ErrListNotFound) {
		a.notFound(list)
		return nil
	}
	if err != nil {
		return err
	}
	if num < 1 || num > len(lines) {
		a.invalidTaskNumber()
		return nil
	}

	removed := lines[num-1]
	next := append(append([]string{}, lines[:num-1]...), lines[num:]...)
	if err := a.Store.WriteLines(list, next); err != nil {
		return err
	}
	a.printf("Task %d removed from list '%s'\n", num, list)
	a.record(ctx, store.Event{Type: store.EventRemove, List: list, Task: num, Detail: record.Decode(removed).Text})
	return nil
}

// Edit replaces the raw line for task num. Tags on that line are dropped.
func (a App) Edit(ctx context.Context, num int, list, text string) error {
	if !a.taskText(text) {
		return nil
	}
	list, ok := a.listName(list)
	if !ok {
		return nil
	}
	lines, err := a.Store.ReadLines(list)
	if errors.Is(err, store.ErrListNotFound) {
		a.notFound(list)
		return nil
	}
	if err != nil {
		return err
	}
	if num < 1 || num > len(lines) {
		a.invalidTaskNumber()
		return nil
	}

	lines[num-1] = text
	if err := a.Store.WriteLines(list, lines); err != nil {
		return err
	}
	a.printf("Task %d updated in list '%s'\n", num, list)
	a.record(ctx, store.Event{Type: store.EventEdit, List: list, Task: num, Detail: text})
	return nil
}

func (a App) Cleanup(ctx context.Context, list string) error {
	list, ok := a.listName(list)
	if !ok {
		return nil
	}
	err := a.Store.Remove(list)
	if errors.Is(err, store.ErrListNotFound) {
		a.notFound(list)
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("List '%s' has been reset.\n", list)
	a.record(ctx, store.Event{Type: store.EventCleanup, List: list})
	return nil
}

const historyDetailWidth = 60

// ShowHistory prints recent changes, newest first. An empty list shows all lists.
func (a App) ShowHistory(ctx context.Context, list string) error {
	if list != "" {
		var ok bool
		if list, ok = a.listName(list); !ok {
			return nil
		}
	}
	if a.History == nil {
		a.println("History is not available.")
		return nil
	}
	events, err := a.History.Recent(ctx, list, a.HistoryLimit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(events) == 0 {
		a.println("No history yet.")
		return nil
	}
	for _, ev := range events {
		detail := ev.Detail
		if ev.Task > 0 {
			detail = fmt.Sprintf("#%d %s", ev.Task, detail)
		}
		a.printf("%s  %-7s  %-12s  %s\n",
			a.Styles.Muted(ev.At.Local().Format("2006-01-02 15:04")),
			ev.Type,
			ev.List,
			render.Truncate(detail, historyDetailWidth),
		)
	}
	return nil
}
