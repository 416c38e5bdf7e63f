// Package sqlite persists serialized templates in a local SQLite database.
// It implements the coordinator's Store contract: create assigns the backend
// identity, update writes against it, and both are idempotent under retry
// with the same id.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/auditkit/templatebuilder/pkg/model"
)

// ErrNotFound is returned when a template id has no row.
var ErrNotFound = errors.New("sqlite: template not found")

const schema = `
CREATE TABLE IF NOT EXISTS templates (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	type         TEXT NOT NULL,
	is_published INTEGER NOT NULL DEFAULT 0,
	payload      TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	updated_at   TEXT NOT NULL
);
`

// Store wraps an open database handle.
type Store struct {
	db *sql.DB
}

// Open opens (and migrates) the database at path. The modernc.org/sqlite
// driver name is "sqlite".
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create assigns a backend identity to the draft and inserts it. The write
// is an upsert so a retried create with the same minted id stays idempotent.
func (s *Store) Create(ctx context.Context, tpl model.Template) (string, error) {
	id := tpl.ID
	if id == "" {
		id = model.MintID("tpl")
	}
	tpl.ID = id
	if err := s.write(ctx, tpl); err != nil {
		return "", fmt.Errorf("sqlite: create template: %w", err)
	}
	return id, nil
}

// Update writes the template against an existing backend identity.
func (s *Store) Update(ctx context.Context, id string, tpl model.Template) error {
	if id == "" {
		return errors.New("sqlite: update requires a backend id")
	}
	tpl.ID = id
	if err := s.write(ctx, tpl); err != nil {
		return fmt.Errorf("sqlite: update template %s: %w", id, err)
	}
	return nil
}

// Get loads one template by backend id.
func (s *Store) Get(ctx context.Context, id string) (model.Template, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM templates WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Template{}, ErrNotFound
	}
	if err != nil {
		return model.Template{}, fmt.Errorf("sqlite: get template %s: %w", id, err)
	}

	var tpl model.Template
	if err := json.Unmarshal([]byte(payload), &tpl); err != nil {
		return model.Template{}, fmt.Errorf("sqlite: decode template %s: %w", id, err)
	}
	return tpl, nil
}

// List returns every stored template ordered by last update, newest first.
func (s *Store) List(ctx context.Context) ([]model.Template, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM templates ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list templates: %w", err)
	}
	defer rows.Close()

	var out []model.Template
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("sqlite: scan template: %w", err)
		}
		var tpl model.Template
		if err := json.Unmarshal([]byte(payload), &tpl); err != nil {
			return nil, fmt.Errorf("sqlite: decode template: %w", err)
		}
		out = append(out, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate templates: %w", err)
	}
	return out, nil
}

// Delete removes a template row. Deleting an absent id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: delete template %s: %w", id, err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, tpl model.Template) error {
	payload, err := json.Marshal(tpl)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	created := tpl.CreatedAt.UTC().Format(time.RFC3339)
	if tpl.CreatedAt.IsZero() {
		created = now
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO templates (id, title, type, is_published, payload, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title        = excluded.title,
	type         = excluded.type,
	is_published = excluded.is_published,
	payload      = excluded.payload,
	updated_at   = excluded.updated_at`,
		tpl.ID, tpl.Title, string(tpl.Type), boolToInt(tpl.IsPublished),
		string(payload), created, now)
	if err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
