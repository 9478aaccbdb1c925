package sqlite

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

type ListRepo struct {
	db  *DB
	now func() time.Time
}

func NewListRepo(db *DB) *ListRepo {
	return &ListRepo{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

const selectColumns = `SELECT id, title, created_at, items FROM todo_lists`

func (r *ListRepo) FindAll(ctx context.Context) ([]model.TodoList, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY created_at, rowid`)
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
	l, err := scanList(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.TodoList{}, model.ErrNotFound
	}
	return l, err
}

func (r *ListRepo) FindByTitle(ctx context.Context, title, excludeID string) ([]model.TodoList, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` WHERE title = ? AND id <> ? ORDER BY created_at, rowid`, title, excludeID)
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

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO todo_lists (id, title, created_at, items) VALUES (?, ?, ?, ?)`,
		l.ID, l.Title, l.CreatedAt, items)
	if err != nil {
		return model.TodoList{}, err
	}
	return l, nil
}

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

	err = r.db.Transaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE todo_lists SET title = ?, items = ? WHERE id = ?`, l.Title, items, l.ID)
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
		return tx.QueryRowContext(ctx, `SELECT created_at FROM todo_lists WHERE id = ?`, l.ID).Scan(&l.CreatedAt)
	})
	if err != nil {
		return model.TodoList{}, err
	}
	l.CreatedAt = l.CreatedAt.UTC()
	return l, nil
}

func (r *ListRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todo_lists WHERE id = ?`, id)
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
		raw string
	)
	if err := s.Scan(&l.ID, &l.Title, &l.CreatedAt, &raw); err != nil {
		return model.TodoList{}, err
	}
	l.CreatedAt = l.CreatedAt.UTC()

	l.Items = []model.TodoItem{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &l.Items); err != nil {
			return model.TodoList{}, fmt.Errorf("decode items of %s: %w", l.ID, err)
		}
	}
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
