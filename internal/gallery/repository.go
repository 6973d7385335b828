package gallery

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/taiwoajasa245/memories-api/internal/database"
)

const createPhotosTable = `
	CREATE TABLE IF NOT EXISTS gallery_photos (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		caption TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		sort_key BIGINT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)
`

type Repository interface {
	// List returns every photo, most recently inserted first.
	List(ctx context.Context) ([]Photo, error)
	// ReplaceAll makes the table hold exactly photos, in that order, in one
	// transaction.
	ReplaceAll(ctx context.Context, photos []Photo) error
	Insert(ctx context.Context, p Photo) error
	// Update reports false when no row has p.ID.
	Update(ctx context.Context, p Photo) (bool, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db     *sql.DB
	rebind func(string) string
	now    func() time.Time

	mu    sync.Mutex
	ready bool
}

func NewRepository(dbService database.Service) Repository {
	return &repository{db: dbService.DB(), rebind: dbService.Rebind, now: time.Now}
}

func (r *repository) ensureTable(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ready {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, createPhotosTable); err != nil {
		return fmt.Errorf("failed to create gallery_photos table: %w", err)
	}
	r.ready = true
	return nil
}

func (r *repository) List(ctx context.Context) ([]Photo, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, url, caption, date
		FROM gallery_photos
		ORDER BY sort_key DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []Photo{}
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.ID, &p.URL, &p.Caption, &p.Date); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// ReplaceAll deletes rows missing from photos, updates the rest in place
// and inserts new ones. Sort keys grow in array order, so the last photo
// counts as the most recently inserted and List returns it first.
func (r *repository) ReplaceAll(ctx context.Context, photos []Photo) error {
	if err := r.ensureTable(ctx); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	existing, err := r.ids(ctx, tx)
	if err != nil {
		return err
	}

	keep := make(map[string]struct{}, len(photos))
	for _, p := range photos {
		keep[p.ID] = struct{}{}
	}
	for id := range existing {
		if _, ok := keep[id]; ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, r.rebind(`DELETE FROM gallery_photos WHERE id = ?`), id); err != nil {
			return fmt.Errorf("failed to delete photo %s: %w", id, err)
		}
	}

	base := r.now().UnixNano()
	for i, p := range photos {
		position := base + int64(i)
		if _, ok := existing[p.ID]; ok {
			query := `UPDATE gallery_photos SET url = ?, caption = ?, date = ?, sort_key = ? WHERE id = ?`
			if _, err := tx.ExecContext(ctx, r.rebind(query), p.URL, p.Caption, p.Date, position, p.ID); err != nil {
				return fmt.Errorf("failed to update photo %s: %w", p.ID, err)
			}
			continue
		}
		query := `INSERT INTO gallery_photos (id, url, caption, date, sort_key) VALUES (?, ?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, r.rebind(query), p.ID, p.URL, p.Caption, p.Date, position); err != nil {
			return fmt.Errorf("failed to insert photo %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

func (r *repository) ids(ctx context.Context, tx *sql.Tx) (map[string]struct{}, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM gallery_photos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]struct{}{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}

// Insert puts p ahead of every stored photo.
func (r *repository) Insert(ctx context.Context, p Photo) error {
	if err := r.ensureTable(ctx); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var top int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(sort_key), 0) FROM gallery_photos`).Scan(&top); err != nil {
		return err
	}
	position := r.now().UnixNano()
	if position <= top {
		position = top + 1
	}

	query := `INSERT INTO gallery_photos (id, url, caption, date, sort_key) VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, r.rebind(query), p.ID, p.URL, p.Caption, p.Date, position); err != nil {
		return fmt.Errorf("failed to insert photo %s: %w", p.ID, err)
	}
	return tx.Commit()
}

func (r *repository) Update(ctx context.Context, p Photo) (bool, error) {
	if err := r.ensureTable(ctx); err != nil {
		return false, err
	}

	query := `UPDATE gallery_photos SET url = ?, caption = ?, date = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, r.rebind(query), p.URL, p.Caption, p.Date, p.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureTable(ctx); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM gallery_photos WHERE id = ?`), id)
	return err
}
