package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"todo-lists-api/internal/ids"
	"todo-lists-api/internal/model"
)

// ListRepo stores each todo list as one row whose items live in a jsonb
// document, so every write replaces the whole list atomically.
type ListRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewListRepo(db *sql.DB) *ListRepo {
	return &ListRepo{
		db:  db,
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

const selectColumns = `SELECT id, title, created_at, items FROM todo_lists`

func (r *ListRepo) FindAll(ctx context.Context) ([]model.TodoList, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY created_at, id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLists(rows)
}

func (r *ListRepo) FindByID(ctx context.Context, id string) (model.TodoList, error) {
	if !ids.Valid(id) {
		return model.TodoList{}, model.ErrNotFound
	}
	l, err := scanList(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1;`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TodoList{}, model.ErrNotFound
		}
		return model.TodoList{}, err
	}
	return l, nil
}

func (r *ListRepo) FindByTitle(ctx context.Context, title, excludeID string) ([]model.TodoList, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if ids.Valid(excludeID) {
		rows, err = r.db.QueryContext(ctx, selectColumns+` WHERE title = $1 AND id <> $2;`, title, excludeID)
	} else {
		rows, err = r.db.QueryContext(ctx, selectColumns+` WHERE title = $1;`, title)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLists(rows)
}

func (r *ListRepo) Create(ctx context.Context, list model.TodoList) (model.TodoList, error) {
	l := list.Clone()
	l.ID = ids.NewID()
	l.CreatedAt = r.now()
	for i := range l.Items {
		l.Items[i].ID = ""
	}
	ids.AssignItemIDs(l.Items)

	items, err := encodeItems(l.Items)
	if err != nil {
		return model.TodoList{}, err
	}

	const q = `
INSERT INTO todo_lists (id, title, created_at, items)
VALUES ($1, $2, $3, $4::jsonb);
`
	if _, err := r.db.ExecContext(ctx, q, l.ID, l.Title, l.CreatedAt, items); err != nil {
		return model.TodoList{}, err
	}
	return l, nil
}

// Save writes title and items of an existing list in one statement.
// created_at is never touched.
func (r *ListRepo) Save(ctx context.Context, list model.TodoList) (model.TodoList, error) {
	if !ids.Valid(list.ID) {
		return model.TodoList{}, model.ErrNotFound
	}
	l := list.Clone()
	ids.AssignItemIDs(l.Items)

	items, err := encodeItems(l.Items)
	if err != nil {
		return model.TodoList{}, err
	}

	const q = `
UPDATE todo_lists
SET title = $2,
    items = $3::jsonb
WHERE id = $1
RETURNING created_at;
`
	err = r.db.QueryRowContext(ctx, q, l.ID, l.Title, items).Scan(&l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TodoList{}, model.ErrNotFound
		}
		return model.TodoList{}, err
	}
	l.CreatedAt = l.CreatedAt.UTC()
	return l, nil
}

func (r *ListRepo) DeleteByID(ctx context.Context, id string) error {
	if !ids.Valid(id) {
		return model.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM todo_lists WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ListRepo) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *ListRepo) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanList(s scanner) (model.TodoList, error) {
	var (
		l   model.TodoList
		raw []byte
	)
	if err := s.Scan(&l.ID, &l.Title, &l.CreatedAt, &raw); err != nil {
		return model.TodoList{}, err
	}
	l.CreatedAt = l.CreatedAt.UTC()
	items, err := decodeItems(raw)
	if err != nil {
		return model.TodoList{}, fmt.Errorf("decode items of %s: %w", l.ID, err)
	}
	l.Items = items
	return l, nil
}

func scanLists(rows *sql.Rows) ([]model.TodoList, error) {
	var out []model.TodoList
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func encodeItems(items []model.TodoItem) (string, error) {
	if items == nil {
		items = []model.TodoItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode items: %w", err)
	}
	return string(b), nil
}

func decodeItems(raw []byte) ([]model.TodoItem, error) {
	items := []model.TodoItem{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
