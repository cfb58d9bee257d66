// Package store keeps saved array configurations in a SQLite database, the
// desktop stand-in for a browser's local storage.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"PAS/internal/array"
	"PAS/internal/layout"
)

// ErrNotFound is returned when no saved configuration matches.
var ErrNotFound = errors.New("configuration not found")

// Saved is a stored configuration with its bookkeeping fields.
type Saved struct {
	ID      string
	SavedAt time.Time
	layout.Configuration
}

// DB wraps a SQLite connection holding saved configurations.
type DB struct {
	conn *sqlx.DB
}

type row struct {
	Seq      int64          `db:"seq"`
	ID       string         `db:"id"`
	Name     string         `db:"name"`
	Antennas string         `db:"antennas_json"`
	Target   sql.NullString `db:"target_json"`
	SavedAt  int64          `db:"saved_at"`
}

// Open opens or creates a database at path. ":memory:" gives a private
// in-memory store.
func Open(path string) (*DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS configurations (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		antennas_json TEXT NOT NULL,
		target_json TEXT,
		saved_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS configurations_name ON configurations(name);`
	_, err := db.conn.Exec(schema)
	return err
}

// Save appends c to the saved list. Configurations with the same name are
// kept side by side; the newest wins in Load.
func (db *DB) Save(c layout.Configuration) (Saved, error) {
	if err := c.Validate(); err != nil {
		return Saved{}, err
	}
	r, err := toRow(c)
	if err != nil {
		return Saved{}, err
	}
	r.ID = uuid.NewString()
	r.SavedAt = time.Now().UnixMilli()
	if _, err := db.conn.NamedExec(`INSERT INTO configurations
		(id, name, antennas_json, target_json, saved_at)
		VALUES (:id, :name, :antennas_json, :target_json, :saved_at)`, r); err != nil {
		return Saved{}, fmt.Errorf("insert %q: %w", c.Name, err)
	}
	return fromRow(r)
}

// List returns every saved configuration, oldest first.
func (db *DB) List() ([]Saved, error) {
	var rows []row
	if err := db.conn.Select(&rows, "SELECT * FROM configurations ORDER BY seq"); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	out := make([]Saved, 0, len(rows))
	for _, r := range rows {
		s, err := fromRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Load returns the most recently saved configuration called name.
func (db *DB) Load(name string) (Saved, error) {
	var r row
	err := db.conn.Get(&r, "SELECT * FROM configurations WHERE name = ? ORDER BY seq DESC LIMIT 1", name)
	if errors.Is(err, sql.ErrNoRows) {
		return Saved{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Saved{}, fmt.Errorf("load %q: %w", name, err)
	}
	return fromRow(r)
}

// Delete removes the configuration with the given id.
func (db *DB) Delete(id string) error {
	res, err := db.conn.Exec("DELETE FROM configurations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// ExportJSON returns every saved configuration as one JSON array.
func (db *DB) ExportJSON() ([]byte, error) {
	saved, err := db.List()
	if err != nil {
		return nil, err
	}
	configs := make([]layout.Configuration, len(saved))
	for i, s := range saved {
		configs[i] = s.Configuration
	}
	return layout.MarshalList(configs)
}

// ImportJSON replaces the saved list with the JSON array in data. Nothing is
// changed unless every entry decodes and validates.
func (db *DB) ImportJSON(data []byte) (int, error) {
	configs, err := layout.UnmarshalList(data)
	if err != nil {
		return 0, err
	}
	rows := make([]row, len(configs))
	now := time.Now().UnixMilli()
	for i, c := range configs {
		r, err := toRow(c)
		if err != nil {
			return 0, err
		}
		r.ID = uuid.NewString()
		r.SavedAt = now
		rows[i] = r
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM configurations"); err != nil {
		return 0, err
	}
	for _, r := range rows {
		if _, err := tx.NamedExec(`INSERT INTO configurations
			(id, name, antennas_json, target_json, saved_at)
			VALUES (:id, :name, :antennas_json, :target_json, :saved_at)`, r); err != nil {
			return 0, fmt.Errorf("insert %q: %w", r.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func toRow(c layout.Configuration) (row, error) {
	antennas := c.Antennas
	if antennas == nil {
		antennas = []array.Element{}
	}
	aj, err := json.Marshal(antennas)
	if err != nil {
		return row{}, fmt.Errorf("encode antennas of %q: %w", c.Name, err)
	}
	r := row{Name: c.Name, Antennas: string(aj)}
	if c.Target != nil {
		tj, err := json.Marshal(c.Target)
		if err != nil {
			return row{}, fmt.Errorf("encode target of %q: %w", c.Name, err)
		}
		r.Target = sql.NullString{String: string(tj), Valid: true}
	}
	return r, nil
}

func fromRow(r row) (Saved, error) {
	s := Saved{
		ID:      r.ID,
		SavedAt: time.UnixMilli(r.SavedAt),
	}
	s.Name = r.Name
	if err := json.Unmarshal([]byte(r.Antennas), &s.Antennas); err != nil {
		return Saved{}, fmt.Errorf("decode antennas of %q: %w", r.Name, err)
	}
	if r.Target.Valid {
		var t array.Point
		if err := json.Unmarshal([]byte(r.Target.String), &t); err != nil {
			return Saved{}, fmt.Errorf("decode target of %q: %w", r.Name, err)
		}
		s.Target = &t
	}
	return s, nil
}
