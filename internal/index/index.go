// Package index keeps a searchable copy of chat messages in an in-memory
// SQLite database.
package index

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/matheus3301/mockchat/internal/index/migrations"
	"github.com/matheus3301/mockchat/internal/store"
	_ "github.com/mattn/go-sqlite3"
)

// Index wraps the in-memory search database.
type Index struct {
	db *sql.DB
}

// MigrateResult describes what happened during migration.
type MigrateResult struct {
	Version uint
	Dirty   bool
	Changed bool
}

// Open creates a fresh, empty in-memory index. Call Migrate before use.
func Open() (*Index, error) {
	dsn := fmt.Sprintf("file:mockchat-%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	// A shared in-memory database lives as long as one connection does.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping index: %w", err)
	}
	return &Index{db: db}, nil
}

// Migrate runs all pending migrations.
func (x *Index) Migrate() (*MigrateResult, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}
	driver, err := sqlite3.WithInstance(x.db, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("migration instance: %w", err)
	}

	err = m.Up()
	changed := true
	if err == migrate.ErrNoChange {
		changed = false
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("migration up: %w", err)
	}

	version, dirty, _ := m.Version()
	return &MigrateResult{Version: version, Dirty: dirty, Changed: changed}, nil
}

// Close releases the database; its contents are gone afterwards.
func (x *Index) Close() error {
	return x.db.Close()
}

const upsertSQL = `
	INSERT INTO messages (chat_id, msg_id, contact_name, body, folded, message_type, sent, time_label, extra)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(chat_id, msg_id) DO UPDATE SET
		body = excluded.body,
		folded = excluded.folded,
		extra = excluded.extra,
		time_label = excluded.time_label`

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func upsert(e execer, chatID int64, contact string, m *store.Message) error {
	extra := searchableExtra(m)
	_, err := e.Exec(upsertSQL,
		chatID, m.ID, contact, m.Text,
		strings.ToLower(m.Text+"\n"+extra),
		string(m.Kind()), m.Sent, m.Time, extra)
	return err
}

// Put indexes one message.
func (x *Index) Put(chatID int64, contact string, m *store.Message) error {
	if err := upsert(x.db, chatID, contact, m); err != nil {
		return fmt.Errorf("index message %d: %w", m.ID, err)
	}
	return nil
}

// Rebuild replaces the index contents with chats in one transaction.
func (x *Index) Rebuild(chats []store.Chat) (int, error) {
	tx, err := x.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM messages`); err != nil {
		return 0, fmt.Errorf("clear index: %w", err)
	}
	n := 0
	for _, chat := range chats {
		name := contactName(&chat)
		for i := range chat.Messages {
			if err := upsert(tx, chat.ID, name, &chat.Messages[i]); err != nil {
				return 0, fmt.Errorf("index chat %d: %w", chat.ID, err)
			}
			n++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit rebuild: %w", err)
	}
	return n, nil
}

// Count returns the number of indexed messages.
func (x *Index) Count() (int64, error) {
	var n int64
	err := x.db.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&n)
	return n, err
}

func contactName(c *store.Chat) string {
	if c.Contact == nil {
		return ""
	}
	return c.Contact.Name
}

func searchableExtra(m *store.Message) string {
	switch m.Kind() {
	case store.TypeFile:
		return m.FileName
	case store.TypePoll:
		labels := make([]string, len(m.PollOptions))
		for i, o := range m.PollOptions {
			labels[i] = o.Text
		}
		return strings.Join(labels, "\n")
	default:
		return ""
	}
}
