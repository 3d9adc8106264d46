package shell

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smartystreets/clock"
	_ "modernc.org/sqlite"

	"github.com/smartystreets/artifact-poller/contracts"
)

// SQLiteDocuments keeps documents as rows of a single table.
type SQLiteDocuments struct {
	clock *clock.Clock
	db    *sql.DB
}

func NewSQLiteDocuments(path string) (*SQLiteDocuments, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	documents := &SQLiteDocuments{db: db}
	if err = documents.initializeSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return documents, nil
}

func (this *SQLiteDocuments) initializeSchema() error {
	_, err := this.db.Exec(`
	CREATE TABLE IF NOT EXISTS documents (
		name    TEXT PRIMARY KEY,
		content BLOB NOT NULL,
		updated TEXT NOT NULL
	);`)
	return err
}

func (this *SQLiteDocuments) ReadDocument(name string) (content []byte, err error) {
	err = this.db.QueryRow(`SELECT content FROM documents WHERE name = ?`, name).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.ErrDocumentNotFound
	}
	return content, err
}

func (this *SQLiteDocuments) WriteDocument(name string, content []byte) error {
	_, err := this.db.Exec(`
	INSERT INTO documents (name, content, updated) VALUES (?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET content = excluded.content, updated = excluded.updated`,
		name, content, this.clock.UTCNow().Format(time.RFC3339Nano))
	return err
}

func (this *SQLiteDocuments) Close() error {
	return this.db.Close()
}
