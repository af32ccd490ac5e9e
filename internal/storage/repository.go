package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// Action names recorded in the submission log.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

// submissionTimeLayout is fixed width so the text column sorts chronologically.
const submissionTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// UIPreferences are the TUI toggles persisted between runs.
type UIPreferences struct {
	Compact       bool
	ShowNumbers   bool
	InlineImages  bool
	ConfirmDelete bool
}

// DefaultUIPreferences is used when nothing has been saved yet.
var DefaultUIPreferences = UIPreferences{
	ShowNumbers:   true,
	InlineImages:  true,
	ConfirmDelete: true,
}

// Submission is one confirmed add or remove performed from this machine.
type Submission struct {
	ID       int64
	Action   string
	URL      string
	PublicID string
	At       time.Time
}

// Repository stores local-only state: UI preferences and the submission log.
// Records themselves are never cached here.
type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS app_settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS submissions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  action TEXT NOT NULL,
  url TEXT NOT NULL,
  public_id TEXT NOT NULL DEFAULT '',
  at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_at ON submissions(at DESC);
`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable fails early when the database file cannot be written.
func (r *Repository) CheckWritable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO app_settings (key, value) VALUES ('write_check', ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value
`, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

func (r *Repository) LoadUIPreferences(ctx context.Context) (UIPreferences, error) {
	prefs := DefaultUIPreferences
	fields := map[string]*bool{
		"ui_compact":        &prefs.Compact,
		"ui_show_numbers":   &prefs.ShowNumbers,
		"ui_inline_images":  &prefs.InlineImages,
		"ui_confirm_delete": &prefs.ConfirmDelete,
	}
	for key, dst := range fields {
		var raw string
		err := r.db.QueryRowContext(ctx, `SELECT value FROM app_settings WHERE key = ?`, key).Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return UIPreferences{}, fmt.Errorf("load setting %s: %w", key, err)
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return UIPreferences{}, fmt.Errorf("parse setting %s=%q: %w", key, raw, err)
		}
		*dst = v
	}
	return prefs, nil
}

func (r *Repository) SaveUIPreferences(ctx context.Context, prefs UIPreferences) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO app_settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value
`)
	if err != nil {
		return fmt.Errorf("prepare settings statement: %w", err)
	}
	defer stmt.Close()

	values := []struct {
		key string
		val bool
	}{
		{"ui_compact", prefs.Compact},
		{"ui_show_numbers", prefs.ShowNumbers},
		{"ui_inline_images", prefs.InlineImages},
		{"ui_confirm_delete", prefs.ConfirmDelete},
	}
	for _, v := range values {
		if _, err := stmt.ExecContext(ctx, v.key, strconv.FormatBool(v.val)); err != nil {
			return fmt.Errorf("save setting %s: %w", v.key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) RecordSubmission(ctx context.Context, s Submission) error {
	at := s.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO submissions (action, url, public_id, at) VALUES (?, ?, ?, ?)
`, s.Action, s.URL, s.PublicID, at.UTC().Format(submissionTimeLayout))
	if err != nil {
		return fmt.Errorf("record %s submission: %w", s.Action, err)
	}
	return nil
}

// ListSubmissions returns the most recent submissions first.
func (r *Repository) ListSubmissions(ctx context.Context, limit int) ([]Submission, error) {
	if limit < 1 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, action, url, public_id, at
FROM submissions
ORDER BY at DESC, id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	out := make([]Submission, 0, limit)
	for rows.Next() {
		var s Submission
		var at string
		if err := rows.Scan(&s.ID, &s.Action, &s.URL, &s.PublicID, &at); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		s.At, err = time.Parse(submissionTimeLayout, at)
		if err != nil {
			return nil, fmt.Errorf("parse submission at %q: %w", at, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}
