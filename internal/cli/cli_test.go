package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"todo-lists-api/internal/client"
	"todo-lists-api/internal/httpapi"
	"todo-lists-api/internal/model"
	"todo-lists-api/internal/store"
	"todo-lists-api/internal/store/memorystore"
	"todo-lists-api/internal/todolist"
)

func runCmd(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestListsCommand(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := memorystore.NewListStore()
	svc := todolist.NewService(st, logger)
	ts := httptest.NewServer(httpapi.NewServer(svc, st, logger))
	defer ts.Close()

	l, err := svc.Create(context.Background(), model.ListInput{
		Title: "Groceries",
		Items: []model.ItemInput{{Text: "milk"}, {Text: "eggs"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	out, err := runCmd(t, context.Background(), "lists", "--server", ts.URL)
	if err != nil {
		t.Fatalf("lists: %v", err)
	}
	if !strings.Contains(out, "Groceries") || !strings.Contains(out, "0/2") {
		t.Fatalf("output:\n%s", out)
	}

	out, err = runCmd(t, context.Background(), "lists", "show", l.ID, "--server", ts.URL)
	if err != nil {
		t.Fatalf("lists show: %v", err)
	}
	if !strings.Contains(out, "milk") || !strings.Contains(out, "eggs") {
		t.Fatalf("output:\n%s", out)
	}

	_, err = runCmd(t, context.Background(), "lists", "show", "missing", "--server", ts.URL)
	if !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMigrateCommands_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.db")
	ctx := context.Background()

	if _, err := runCmd(t, ctx, "migrate", "up", "--store", "sqlite", "--sqlite-path", path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	out, err := runCmd(t, ctx, "migrate", "status", "--store", "sqlite", "--sqlite-path", path)
	if err != nil {
		t.Fatalf("migrate status: %v", err)
	}
	if !strings.Contains(out, "applied") || !strings.Contains(out, "00001_create_todo_lists.sql") {
		t.Fatalf("output:\n%s", out)
	}

	if _, err := runCmd(t, ctx, "migrate", "down", "--store", "sqlite", "--sqlite-path", path); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	out, err = runCmd(t, ctx, "migrate", "status", "--store", "sqlite", "--sqlite-path", path)
	if err != nil {
		t.Fatalf("migrate status: %v", err)
	}
	if !strings.Contains(out, "pending") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestMigrateCommand_MemoryHasNoMigrations(t *testing.T) {
	_, err := runCmd(t, context.Background(), "migrate", "up", "--store", "memory")
	if !errors.Is(err, store.ErrNoMigrations) {
		t.Fatalf("expected ErrNoMigrations, got %v", err)
	}
}

func TestServeCommand_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runCmd(t, ctx, "serve", "--store", "memory", "--addr", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("serve: %v", err)
	}
}

func TestRootCommand_BadLogLevel(t *testing.T) {
	_, err := runCmd(t, context.Background(), "serve", "--log-level", "loud", "--addr", "127.0.0.1:0")
	if err == nil {
		t.Fatalf("expected error for bad log level")
	}
}
