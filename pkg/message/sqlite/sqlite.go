// Package sqlite stores greeting messages in a SQLite database.
//
// The schema is managed with golang-migrate from migrations embedded in
// the binary, so a fresh file is usable without any setup:
//
//	s, err := sqlite.Open(ctx, "messages.db", seed)
//	defer s.Close()
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	msqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	yerrors "github.com/matzehuels/yuletree/pkg/errors"
	"github.com/matzehuels/yuletree/pkg/message"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is a [message.Store] backed by SQLite.
type Store struct {
	db *sql.DB
}

var _ message.Store = (*Store)(nil)

func dsn(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000", path)
}

// Open opens (creating if needed) the database file at path, applies
// pending migrations and, when the table is empty, inserts seed.
func Open(ctx context.Context, path string, seed []message.Message) (*Store, error) {
	if err := yerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	if err := Migrate(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, yerrors.Wrap(yerrors.ErrCodeStoreUnavailable, err, "open sqlite %s", path)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db}
	if err := s.seed(ctx, seed); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate applies all up migrations to the database at path.
func Migrate(path string) error {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return yerrors.Wrap(yerrors.ErrCodeStoreUnavailable, err, "open sqlite %s", path)
	}

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		db.Close()
		return fmt.Errorf("load migrations: %w", err)
	}
	driver, err := msqlite.WithInstance(db, &msqlite.Config{})
	if err != nil {
		db.Close()
		return yerrors.Wrap(yerrors.ErrCodeStoreUnavailable, err, "migrate %s", path)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		db.Close()
		return fmt.Errorf("migrate: %w", err)
	}
	// Close releases the source and the database handle opened above.
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

func (s *Store) seed(ctx context.Context, seed []message.Message) error {
	if len(seed) == 0 {
		return nil
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&n); err != nil {
		return fmt.Errorf("count messages: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, m := range seed {
		if _, err := tx.ExecContext(ctx, `INSERT INTO messages (id, text) VALUES (?, ?)`, m.ID, m.Text); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("seed message %d: %w", m.ID, err)
		}
	}
	return tx.Commit()
}

// List returns all messages ordered by id.
func (s *Store) List(ctx context.Context) ([]message.Message, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text FROM messages ORDER BY id`)
	if err != nil {
		return nil, yerrors.Wrap(yerrors.ErrCodeStoreUnavailable, err, "list messages")
	}
	defer rows.Close()

	msgs := []message.Message{}
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.Text); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Create appends a message; SQLite assigns the next id.
func (s *Store) Create(ctx context.Context, text string) (message.Message, error) {
	text, err := message.Validate(text)
	if err != nil {
		return message.Message{}, err
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO messages (text) VALUES (?)`, text)
	if err != nil {
		return message.Message{}, yerrors.Wrap(yerrors.ErrCodeStoreUnavailable, err, "insert message")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return message.Message{}, err
	}
	return message.Message{ID: int(id), Text: text}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
