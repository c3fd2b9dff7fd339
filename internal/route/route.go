// Package route turns the argument vector into a typed command.
//
// Each verb has a small grammar anchored on its trailing keyword
// ("to", "from", "in"), so variable-length task text can sit in the middle.
package route

import (
	"errors"
	"strconv"
	"strings"
)

// EvalMarker switches `use` on a directory to printing a bare cd command.
const EvalMarker = "--eval"

type Kind int

const (
	KindAdd Kind = iota + 1
	KindAddPrompt
	KindListNames
	KindListAll
	KindListTasks
	KindRemove
	KindEdit
	KindTag
	KindUse
	KindCleanup
	KindHistory
)

func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindAddPrompt:
		return "add-prompt"
	case KindListNames:
		return "list-names"
	case KindListAll:
		return "list-all"
	case KindListTasks:
		return "list-tasks"
	case KindRemove:
		return "remove"
	case KindEdit:
		return "edit"
	case KindTag:
		return "tag"
	case KindUse:
		return "use"
	case KindCleanup:
		return "cleanup"
	case KindHistory:
		return "history"
	default:
		return "unknown"
	}
}

// Command is a parsed invocation. Only the fields relevant to Kind are set.
type Command struct {
	Kind Kind
	List string
	// Task is the task text for add; Text is the replacement text for edit.
	Task string
	Text string
	// Num is the 1-based task number as typed; range checks happen against the list.
	Num int
	// TagNum is the 1-based tag number for use; 0 means "not given".
	TagNum int
	// File is the explicit path operand for tag; empty means the working directory.
	File string
}

// ErrInvalidTaskNumber is returned when a task number operand is not a number.
var ErrInvalidTaskNumber = errors.New("invalid task number")

// UsageError reports an argument shape that matches no grammar.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string { return e.Usage }

func usageErr(verb string) error {
	if u, ok := verbUsage[verb]; ok {
		return &UsageError{Usage: u}
	}
	return &UsageError{Usage: Usage()}
}

var verbUsage = map[string]string{
	"add":     "Usage: todo add <task> [to <list>]",
	"list":    "Usage: todo list [all|<list>]",
	"remove":  "Usage: todo remove <num> from <list>",
	"edit":    "Usage: todo edit <num> in <list> <new_text>",
	"tag":     "Usage: todo tag [<file>] <num> in <list>",
	"use":     "Usage: todo use <num> [tag_num] in <list>",
	"cleanup": "Usage: todo cleanup <list>",
	"history": "Usage: todo history [<list>]",
}

// VerbUsage returns the one-line usage for verb, or "" if verb is unknown.
func VerbUsage(verb string) string {
	return verbUsage[verb]
}

// Usage returns the full usage text.
func Usage() string {
	return strings.Join([]string{
		"Usage:",
		"  todo add <task> to <list>            - Add a task to a specific list",
		"  todo add <task>                      - Add a task, choosing the list interactively",
		"  todo list                            - Show all available lists",
		"  todo list all                        - Show all lists and their tasks",
		"  todo list <list>                     - List all tasks in a specific list",
		"  todo remove <num> from <list>        - Remove task by number from a list",
		"  todo edit <num> in <list> <new_text> - Edit a task in a list",
		"  todo tag <num> in <list>             - Tag current directory to task",
		"  todo tag <file> <num> in <list>      - Tag specific file to task",
		"  todo use <num> in <list>             - Use first/only tag of task",
		"  todo use <num> <tag_num> in <list>   - Use specific tag of task",
		"  todo cleanup <list>                  - Reset a specific list",
		"  todo history [<list>]                - Show recent changes",
	}, "\n")
}

// Operands returns the operands of verb. Only use takes EvalMarker; for every
// other verb the token is ordinary task text and is kept.
func Operands(verb string, args []string) ([]string, bool) {
	if verb != "use" {
		return args, false
	}
	return SplitEval(args)
}

// SplitEval removes every EvalMarker token from args and reports whether any was present.
func SplitEval(args []string) ([]string, bool) {
	out := make([]string, 0, len(args))
	found := false
	for _, a := range args {
		if a == EvalMarker {
			found = true
			continue
		}
		out = append(out, a)
	}
	return out, found
}

// Parse interprets args (verb first, program name excluded).
func Parse(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &UsageError{Usage: Usage()}
	}
	return ParseVerb(args[0], args[1:])
}

// ParseVerb interprets the operands of one verb.
func ParseVerb(verb string, ops []string) (Command, error) {
	switch verb {
	case "add":
		return parseAdd(ops)
	case "list":
		return parseList(ops)
	case "remove":
		return parseRemove(ops)
	case "edit":
		return parseEdit(ops)
	case "tag":
		return parseTag(ops)
	case "use":
		return parseUse(ops)
	case "cleanup":
		return parseCleanup(ops)
	case "history":
		return parseHistory(ops)
	default:
		return Command{}, &UsageError{Usage: Usage()}
	}
}

// trailing reports whether ops ends with `<keyword> <list>` and returns the
// operands before the keyword.
func trailing(ops []string, keyword string) (head []string, list string, ok bool) {
	n := len(ops)
	if n < 2 || ops[n-2] != keyword {
		return nil, "", false
	}
	return ops[:n-2], ops[n-1], true
}

func parseAdd(ops []string) (Command, error) {
	if len(ops) == 0 {
		return Command{}, usageErr("add")
	}
	// A "to" anywhere but the last token means the user meant the targeted form.
	if containsKeyword(ops[:len(ops)-1], "to") {
		head, list, ok := trailing(ops, "to")
		if !ok || len(head) == 0 {
			return Command{}, usageErr("add")
		}
		return Command{Kind: KindAdd, Task: strings.Join(head, " "), List: list}, nil
	}
	return Command{Kind: KindAddPrompt, Task: strings.Join(ops, " ")}, nil
}

func parseList(ops []string) (Command, error) {
	switch {
	case len(ops) == 0:
		return Command{Kind: KindListNames}, nil
	case len(ops) > 1:
		return Command{}, usageErr("list")
	case ops[0] == "all":
		return Command{Kind: KindListAll}, nil
	default:
		return Command{Kind: KindListTasks, List: ops[0]}, nil
	}
}

func parseRemove(ops []string) (Command, error) {
	head, list, ok := trailing(ops, "from")
	if !ok || len(head) != 1 {
		return Command{}, usageErr("remove")
	}
	num, err := parseTaskNum(head[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: KindRemove, Num: num, List: list}, nil
}

func parseEdit(ops []string) (Command, error) {
	// edit <num> in <list> <text...>: anchored at the front since the text trails.
	if len(ops) < 4 || ops[1] != "in" {
		return Command{}, usageErr("edit")
	}
	num, err := parseTaskNum(ops[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: KindEdit, Num: num, List: ops[2], Text: strings.Join(ops[3:], " ")}, nil
}

func parseTag(ops []string) (Command, error) {
	head, list, ok := trailing(ops, "in")
	if !ok {
		return Command{}, usageErr("tag")
	}
	cmd := Command{Kind: KindTag, List: list}
	switch len(head) {
	case 1:
	case 2:
		cmd.File = head[0]
	default:
		return Command{}, usageErr("tag")
	}
	num, err := parseTaskNum(head[len(head)-1])
	if err != nil {
		return Command{}, err
	}
	cmd.Num = num
	return cmd, nil
}

func parseUse(ops []string) (Command, error) {
	head, list, ok := trailing(ops, "in")
	if !ok || len(head) < 1 || len(head) > 2 {
		return Command{}, usageErr("use")
	}
	num, err := parseTaskNum(head[0])
	if err != nil {
		return Command{}, err
	}
	cmd := Command{Kind: KindUse, Num: num, List: list}
	if len(head) == 2 {
		// A non-numeric tag operand is treated as out of range.
		n, err := strconv.Atoi(head[1])
		if err != nil || n < 1 {
			n = -1
		}
		cmd.TagNum = n
	}
	return cmd, nil
}

func parseCleanup(ops []string) (Command, error) {
	if len(ops) != 1 {
		return Command{}, usageErr("cleanup")
	}
	return Command{Kind: KindCleanup, List: ops[0]}, nil
}

func parseHistory(ops []string) (Command, error) {
	switch len(ops) {
	case 0:
		return Command{Kind: KindHistory}, nil
	case 1:
		return Command{Kind: KindHistory, List: ops[0]}, nil
	default:
		return Command{}, usageErr("history")
	}
}

func parseTaskNum(s string) (int, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 31)
	if err != nil {
		return 0, ErrInvalidTaskNumber
	}
	return int(n), nil
}

func containsKeyword(ops []string, keyword string) bool {
	for _, o := range ops {
		if o == keyword {
			return true
		}
	}
	return false
}
