package model

// Item is one task in a list. Tags are filesystem paths, oldest first.
type Item struct {
	Text string   `json:"text"`
	Tags []string `json:"tags,omitempty"`
}

func NewItem(text string) Item {
	return Item{Text: text}
}

// AddTag appends path, dropping any earlier occurrence so the most recently
// tagged path is always last.
func (it *Item) AddTag(path string) {
	it.RemoveTag(path)
	it.Tags = append(it.Tags, path)
}

// RemoveTag drops every occurrence of path and reports whether one was found.
func (it *Item) RemoveTag(path string) bool {
	out := it.Tags[:0]
	found := false
	for _, t := range it.Tags {
		if t == path {
			found = true
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		out = nil
	}
	it.Tags = out
	return found
}

func (it Item) HasTags() bool {
	return len(it.Tags) > 0
}
