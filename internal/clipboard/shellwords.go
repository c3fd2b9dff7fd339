package clipboard

import (
	"strings"
	"unicode"
)

// splitShellWords splits a shell-like command string into argv, handling basic quoting.
// It supports single quotes, double quotes, and backslash escaping (outside single quotes).
func splitShellWords(s string) []string {
	var out []string
	var cur []rune
	inSingle := false
	inDouble := false
	escaped := false
	started := false

	flush := func() {
		if !started {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
		started = false
	}

	for _, r := range s {
		if escaped {
			cur = append(cur, r)
			escaped = false
			continue
		}
		switch {
		case r == '\\' && !inSingle:
			escaped = true
			started = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
			started = true
		case r == '"' && !inSingle:
			inDouble = !inDouble
			started = true
		case !inSingle && !inDouble && unicode.IsSpace(r):
			flush()
		default:
			cur = append(cur, r)
			started = true
		}
	}
	flush()
	return out
}

// Quote returns s quoted for a POSIX shell when it contains anything other
// than plain path characters.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("/._-+:,@%~", r)) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
