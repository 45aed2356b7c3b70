// Package cache keeps the last successfully fetched habit list in a local
// SQLite database so the read path still renders when the server is out of
// reach. The whole table is replaced per fetch, mirroring how screens swap
// snapshots instead of editing them.
package cache

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dukerupert/habitly/internal/codec"
	"github.com/dukerupert/habitly/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open opens the cache database at the given path and runs migrations.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ReplaceAll swaps the cached habit list for the given one. Habits are stored
// as full wire documents so loading replays the same decode path a live
// response takes.
func (s *Store) ReplaceAll(habits []model.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM cached_habits`); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	now := time.Now().UTC()
	for i, h := range habits {
		doc, err := codec.EncodeHabitDocument(h)
		if err != nil {
			return fmt.Errorf("encode habit %d: %w", h.ID, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO cached_habits (id, position, doc, fetched_at) VALUES (?, ?, ?, ?)`,
			h.ID, i, string(doc), now,
		); err != nil {
			return fmt.Errorf("insert habit %d: %w", h.ID, err)
		}
	}
	return tx.Commit()
}

// LoadAll returns the cached habit list in its original server order.
func (s *Store) LoadAll() ([]model.Habit, error) {
	rows, err := s.db.Query(`SELECT doc FROM cached_habits ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query cache: %w", err)
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		h, err := codec.DecodeHabit([]byte(doc))
		if err != nil {
			return nil, fmt.Errorf("decode cached habit: %w", err)
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// FetchedAt reports when the cache was last replaced. ok is false when the
// cache is empty.
func (s *Store) FetchedAt() (time.Time, bool, error) {
	row := s.db.QueryRow(`SELECT fetched_at FROM cached_habits ORDER BY fetched_at DESC LIMIT 1`)
	var at time.Time
	err := row.Scan(&at)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("query fetched_at: %w", err)
	}
	return at, true, nil
}
