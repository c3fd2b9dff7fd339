// Package record converts a task to and from its single-line on-disk form.
//
// A line is the task text, optionally followed by " [TAGS:" + tags joined
// with "|" + "]". Decoding never fails: anything that does not parse as a
// tag section is kept as plain text.
package record

import (
	"strings"

	"todo-cli/internal/model"
)

const (
	TagMarker    = " [TAGS:"
	TagClose     = "]"
	TagSeparator = "|"
)

func Encode(it model.Item) string {
	if len(it.Tags) == 0 {
		return it.Text
	}
	var b strings.Builder
	b.WriteString(it.Text)
	b.WriteString(TagMarker)
	b.WriteString(strings.Join(it.Tags, TagSeparator))
	b.WriteString(TagClose)
	return b.String()
}

func Decode(line string) model.Item {
	start := strings.Index(line, TagMarker)
	if start < 0 {
		return model.NewItem(line)
	}
	bodyStart := start + len(TagMarker)
	// The last "]" in the line closes the section, not the first one after the marker.
	end := strings.LastIndex(line, TagClose)
	if end < bodyStart {
		return model.NewItem(line)
	}

	it := model.NewItem(line[:start])
	for _, raw := range strings.Split(line[bodyStart:end], TagSeparator) {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		it.Tags = append(it.Tags, tag)
	}
	return it
}

func EncodeAll(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, Encode(it))
	}
	return out
}

func DecodeAll(lines []string) []model.Item {
	out := make([]model.Item, 0, len(lines))
	for _, l := range lines {
		out = append(out, Decode(l))
	}
	return out
}
