package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"todo-cli/internal/model"
)

func TestStore_AppendCreatesList(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), "lists")}

	if s.Exists("groceries") {
		t.Fatalf("expected list to be absent")
	}
	if err := s.Append("groceries", model.NewItem("buy milk")); err != nil {
		t.Fatalf("append: %v", err)
	}
	raw, err := os.ReadFile(s.ListPath("groceries"))
	if err != nil {
		t.Fatalf("read list file: %v", err)
	}
	if string(raw) != "buy milk\n" {
		t.Fatalf("unexpected file contents: %q", string(raw))
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	items := []model.Item{
		{Text: "a"},
		{Text: "b", Tags: []string{"/tmp/x", "/tmp/y"}},
	}
	if err := s.Save("work", items); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load("work")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, items) {
		t.Fatalf("expected %#v, got %#v", items, got)
	}

	ents, err := os.ReadDir(s.Dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range ents {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestStore_ReadLinesMissingList(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if _, err := s.ReadLines("nope"); !errors.Is(err, ErrListNotFound) {
		t.Fatalf("expected ErrListNotFound, got %v", err)
	}
}

func TestStore_ReadLinesStripsCRLF(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := os.WriteFile(s.ListPath("win"), []byte("one\r\ntwo\r\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines, err := s.ReadLines("win")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"one", "two"}) {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestStore_ListsSortedTxtOnly(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	for _, name := range []string{"zeta.txt", "alpha.txt", "notes.md", ".hidden.txt"} {
		if err := os.WriteFile(filepath.Join(s.Dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(s.Dir, "dir.txt"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := s.Lists()
	if err != nil {
		t.Fatalf("lists: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"alpha", "zeta"}) {
		t.Fatalf("unexpected lists: %v", got)
	}
}

func TestStore_ListsMissingDir(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), "missing")}
	got, err := s.Lists()
	if err != nil {
		t.Fatalf("lists: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no lists, got %v", got)
	}
}

func TestStore_Remove(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.Append("tmp", model.NewItem("x")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Remove("tmp"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.Exists("tmp") {
		t.Fatalf("expected list to be gone")
	}
	if err := s.Remove("tmp"); !errors.Is(err, ErrListNotFound) {
		t.Fatalf("expected ErrListNotFound on second remove, got %v", err)
	}
}

func TestNormalizeListName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"groceries", "groceries", false},
		{"  work ", "work", false},
		{"", "", true},
		{"../etc", "", true},
		{"a/b", "", true},
		{"..", "", true},
	}
	for _, tc := range cases {
		got, err := NormalizeListName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("NormalizeListName(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("NormalizeListName(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}
