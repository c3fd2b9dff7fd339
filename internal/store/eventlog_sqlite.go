package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	_ "modernc.org/sqlite"
)

const historyFileName = ".history.sqlite"

// Event types recorded in the history log.
const (
	EventAdd     = "add"
	EventRemove  = "remove"
	EventEdit    = "edit"
	EventTag     = "tag"
	EventUntag   = "untag"
	EventCleanup = "cleanup"
)

type Event struct {
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
	Type   string    `json:"type"`
	List   string    `json:"list"`
	Task   int       `json:"task,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// History is a local SQLite log of list mutations. It is informational only:
// the list files remain the source of truth.
type History struct {
	Path string
	// Now is overridable for tests.
	Now func() time.Time
}

func (s Store) History() History {
	return History{Path: filepath.Join(s.Dir, historyFileName), Now: time.Now}
}

func (h History) open(ctx context.Context) (*sql.DB, error) {
	if err := ensureParent(h.Path); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", h.Path)
	if err != nil {
		return nil, err
	}
	// WAL + busy_timeout keep two quick invocations from failing with "database is locked".
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateHistory(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateHistory(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			at_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			list TEXT NOT NULL,
			task INTEGER NOT NULL,
			detail TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_list ON events(list, at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Append records ev, filling in ID and At when unset.
func (h History) Append(ctx context.Context, ev Event) error {
	ev.Type = strings.TrimSpace(ev.Type)
	if ev.Type == "" {
		return errors.New("history: missing event type")
	}
	if ev.At.IsZero() {
		now := time.Now
		if h.Now != nil {
			now = h.Now
		}
		ev.At = now().UTC()
	}
	if ev.ID == "" {
		id, err := ulid.New(ulid.Timestamp(ev.At), rand.Reader)
		if err != nil {
			return err
		}
		ev.ID = id.String()
	}

	db, err := h.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT INTO events(event_id, at_unixms, type, list, task, detail) VALUES(?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.At.UnixMilli(), ev.Type, ev.List, ev.Task, ev.Detail,
	)
	return err
}

// Recent returns up to limit events, newest first. An empty list matches all lists.
func (h History) Recent(ctx context.Context, list string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}
	db, err := h.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT event_id, at_unixms, type, list, task, detail FROM events`
	args := []any{}
	if list = strings.TrimSpace(list); list != "" {
		q += ` WHERE list = ?`
		args = append(args, list)
	}
	q += ` ORDER BY at_unixms DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var ev Event
		var atMs int64
		if err := rows.Scan(&ev.ID, &atMs, &ev.Type, &ev.List, &ev.Task, &ev.Detail); err != nil {
			return nil, err
		}
		ev.At = time.UnixMilli(atMs).UTC()
		out = append(out, ev)
	}
	return out, rows.Err()
}

func ensureParent(path string) error {
	return Store{Dir: filepath.Dir(path)}.Ensure()
}
