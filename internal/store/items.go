package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"crate/internal/catalog"
)

const insertItemSQL = `INSERT INTO items (` + itemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Insert stores a new item. An empty ID is replaced with a fresh UUID and
// missing timestamps are set to now; an empty list defaults to the collection.
func (s *Store) Insert(ctx context.Context, item catalog.Item) (*catalog.Item, error) {
	prepared := prepareInsert(item, time.Now().UTC())
	if err := insertItem(ctx, s.db, prepared); err != nil {
		return nil, err
	}
	return s.Get(ctx, prepared.ID)
}

func prepareInsert(item catalog.Item, now time.Time) catalog.Item {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.List == "" {
		item.List = catalog.ListCollection
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = item.CreatedAt
	}
	return item
}

func insertItem(ctx context.Context, db execer, item catalog.Item) error {
	args, err := itemArgs(item)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, insertItemSQL, args...); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// Update overwrites every field of an existing item and bumps UpdatedAt.
func (s *Store) Update(ctx context.Context, item catalog.Item) error {
	return updateItem(ctx, s.db, item, time.Now().UTC())
}

func updateItem(ctx context.Context, db execer, item catalog.Item, now time.Time) error {
	item.UpdatedAt = now
	args, err := itemArgs(item)
	if err != nil {
		return err
	}
	// args follow itemColumns: id, the mutable fields, created_at, updated_at.
	res, err := db.ExecContext(ctx, `UPDATE items SET
            list = ?, artist = ?, title = ?, media_type = ?, genre = ?, year = ?,
            cover_art_url = ?, notes = ?, version = ?, record_label = ?,
            tags_json = ?, tracklist_json = ?, updated_at = ?
        WHERE id = ?`,
		append(append([]any{}, args[1:13]...), args[14], args[0])...,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return requireAffected(res, item.ID)
}

// Delete removes an item by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return requireAffected(res, id)
}

// Move reassigns an item to another list. The item becomes the newest entry
// there: it is listed first and its CreatedAt is reset.
func (s *Store) Move(ctx context.Context, id string, list catalog.List) error {
	now := formatTime(time.Now())
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET list = ?, created_at = ?, updated_at = ?,
            seq = (SELECT COALESCE(MAX(seq), 0) + 1 FROM items)
        WHERE id = ?`,
		string(list), now, now, id,
	)
	if err != nil {
		return fmt.Errorf("move item: %w", err)
	}
	return requireAffected(res, id)
}

// Get fetches an item by ID. It returns nil, nil when no item matches.
func (s *Store) Get(ctx context.Context, id string) (*catalog.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List returns the items on list, newest first. An empty mediaType returns
// every format.
func (s *Store) List(ctx context.Context, list catalog.List, mediaType catalog.MediaType) ([]catalog.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE list = ?`
	args := []any{string(list)}
	if mediaType != "" {
		query += ` AND media_type = ?`
		args = append(args, string(mediaType))
	}
	query += ` ORDER BY seq DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []catalog.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// Count returns the number of items on list.
func (s *Store) Count(ctx context.Context, list catalog.List) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM items WHERE list = ?`, string(list)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// ReplaceAll swaps the entire catalog for data inside one transaction.
// Each list in data is newest first and keeps that order. Item IDs and
// creation times from data are preserved.
func (s *Store) ReplaceAll(ctx context.Context, data catalog.CollectionData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}

	now := time.Now().UTC()
	lists := []struct {
		list  catalog.List
		items []catalog.Item
	}{
		{catalog.ListCollection, data.Collection},
		{catalog.ListWantlist, data.Wantlist},
	}
	for _, l := range lists {
		for i := len(l.items) - 1; i >= 0; i-- {
			item := l.items[i]
			item.List = l.list
			if err := insertItem(ctx, tx, prepareInsert(item, now)); err != nil {
				return fmt.Errorf("restore %q: %w", item.Title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// Merge applies updates and then inserts inside one transaction; nothing is
// written if any statement fails. inserts are newest first, like List output,
// and land ahead of every existing item.
func (s *Store) Merge(ctx context.Context, updates, inserts []catalog.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin merge tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for _, item := range updates {
		if err := updateItem(ctx, tx, item, now); err != nil {
			return fmt.Errorf("merge %q: %w", item.Title, err)
		}
	}
	for i := len(inserts) - 1; i >= 0; i-- {
		item := inserts[i]
		if err := insertItem(ctx, tx, prepareInsert(item, now)); err != nil {
			return fmt.Errorf("insert %q: %w", item.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit merge: %w", err)
	}
	return nil
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
