package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"todo-cli/internal/model"
	"todo-cli/internal/record"
)

const (
	// DefaultDirName is the storage directory under the user's home.
	DefaultDirName = ".todo_lists"
	listExt        = ".txt"
)

// ErrListNotFound is returned by reads of a list that has no backing file.
var ErrListNotFound = errors.New("list not found")

// Store keeps one <name>.txt file per list inside Dir.
type Store struct {
	Dir string
}

// DefaultDir returns ~/.todo_lists.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) ListPath(name string) string {
	return filepath.Join(s.Dir, name+listExt)
}

func (s Store) Exists(name string) bool {
	st, err := os.Stat(s.ListPath(name))
	return err == nil && st.Mode().IsRegular()
}

// ReadLines returns the raw records of a list, without line terminators.
func (s Store) ReadLines(name string) ([]string, error) {
	b, err := os.ReadFile(s.ListPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read list %q: %w", name, err)
	}
	return lines, nil
}

func (s Store) Load(name string) ([]model.Item, error) {
	lines, err := s.ReadLines(name)
	if err != nil {
		return nil, err
	}
	return record.DecodeAll(lines), nil
}

// WriteLines replaces the whole list file. The write goes through a temp file
// and a rename, so readers see either the old or the new contents.
func (s Store) WriteLines(name string, lines []string) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	if err := atomicWriteFile(s.Dir, name+listExt+".*.tmp", s.ListPath(name), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write list %q: %w", name, err)
	}
	return nil
}

func (s Store) Save(name string, items []model.Item) error {
	return s.WriteLines(name, record.EncodeAll(items))
}

// Append adds one record to the end of a list, creating the list if needed.
func (s Store) Append(name string, it model.Item) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	f, err := os.OpenFile(s.ListPath(name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(record.Encode(it) + "\n"); err != nil {
		return fmt.Errorf("append to list %q: %w", name, err)
	}
	return f.Close()
}

// Lists returns the names of all lists, sorted.
func (s Store) Lists() ([]string, error) {
	ents, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	out := []string{}
	for _, e := range ents {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != listExt || strings.HasPrefix(name, ".") {
			continue
		}
		out = append(out, strings.TrimSuffix(name, listExt))
	}
	sort.Strings(out)
	return out, nil
}

// Remove deletes the list's backing file.
func (s Store) Remove(name string) error {
	err := os.Remove(s.ListPath(name))
	if errors.Is(err, os.ErrNotExist) {
		return ErrListNotFound
	}
	return err
}

// NormalizeListName trims a list name and rejects names that would escape Dir.
func NormalizeListName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("list name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid list name: %s", name)
	}
	return name, nil
}
