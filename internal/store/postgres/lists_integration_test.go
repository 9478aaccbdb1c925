package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"todo-lists-api/internal/ids"
	"todo-lists-api/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		t.Skip("DB_URL not set (integration test)")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	m, err := NewMigrator(db)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Up(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func uniqueTitle(prefix string) string {
	return prefix + " " + time.Now().UTC().Format("20060102_150405.000000000")
}

func TestCreateFindSaveDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewListRepo(db)
	ctx := context.Background()

	title := uniqueTitle("Groceries")
	created, err := repo.Create(ctx, model.TodoList{
		Title: title,
		Items: []model.TodoItem{{Text: "milk"}, {Text: "eggs", Completed: true}},
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = repo.DeleteByID(context.Background(), created.ID) })

	if !ids.Valid(created.ID) {
		t.Fatalf("expected uuid id, got %q", created.ID)
	}

	got, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != title || len(got.Items) != 2 || !got.Items[1].Completed {
		t.Fatalf("unexpected list: %+v", got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("createdAt mismatch: %s vs %s", got.CreatedAt, created.CreatedAt)
	}

	found, err := repo.FindByTitle(ctx, title, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 title match, got %d", len(found))
	}
	found, err = repo.FindByTitle(ctx, title, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 0 {
		t.Fatalf("expected self excluded, got %d", len(found))
	}

	got.Items = append(got.Items[:1], model.TodoItem{Text: "bread"})
	saved, err := repo.Save(ctx, got)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Items[1].ID == "" {
		t.Fatalf("expected id for new item")
	}
	if !saved.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("createdAt changed on save")
	}

	if err := repo.DeleteByID(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.FindByID(ctx, created.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNotFound_InvalidID(t *testing.T) {
	db := openTestDB(t)
	repo := NewListRepo(db)
	ctx := context.Background()

	if _, err := repo.FindByID(ctx, "not-a-uuid"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("FindByID err=%v", err)
	}
	if err := repo.DeleteByID(ctx, ids.NewID()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteByID err=%v", err)
	}
	if _, err := repo.Save(ctx, model.TodoList{ID: ids.NewID(), Title: "x"}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Save err=%v", err)
	}
}

func TestUniqueTitleIndex(t *testing.T) {
	db := openTestDB(t)
	repo := NewListRepo(db)
	ctx := context.Background()

	title := uniqueTitle("Dup")
	first, err := repo.Create(ctx, model.TodoList{Title: title, Items: []model.TodoItem{{Text: "a"}}})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = repo.DeleteByID(context.Background(), first.ID) })

	if _, err := repo.Create(ctx, model.TodoList{Title: title, Items: []model.TodoItem{{Text: "a"}}}); err == nil {
		t.Fatalf("expected unique violation")
	}
}
