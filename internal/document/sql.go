package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/taiwoajasa245/memories-api/internal/database"
)

const createDocumentsTable = `
	CREATE TABLE IF NOT EXISTS documents (
		doc_key TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)
`

// SQLBackend keeps documents in the "documents" table of the main database.
type SQLBackend struct {
	db     *sql.DB
	rebind func(string) string

	mu    sync.Mutex
	ready bool
}

func NewSQLBackend(dbService database.Service) *SQLBackend {
	return &SQLBackend{db: dbService.DB(), rebind: dbService.Rebind}
}

// ensureTable creates the table on first access; a failure is retried on
// the next call.
func (b *SQLBackend) ensureTable(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ready {
		return nil
	}
	if _, err := b.db.ExecContext(ctx, createDocumentsTable); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	b.ready = true
	return nil
}

func (b *SQLBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := b.ensureTable(ctx); err != nil {
		return nil, err
	}

	var body string
	err := b.db.QueryRowContext(ctx, b.rebind(`SELECT body FROM documents WHERE doc_key = ?`), key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(body), nil
}

func (b *SQLBackend) Put(ctx context.Context, key string, body []byte) error {
	if err := b.ensureTable(ctx); err != nil {
		return err
	}

	query := `
		INSERT INTO documents (doc_key, body, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (doc_key) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP
	`
	_, err := b.db.ExecContext(ctx, b.rebind(query), key, string(body))
	return err
}
