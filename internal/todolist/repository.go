package todolist

import (
	"context"

	"todo-lists-api/internal/model"
)

// TitleFinder looks up lists by their sanitized title.
// An empty excludeID matches every list.
type TitleFinder interface {
	FindByTitle(ctx context.Context, title, excludeID string) ([]model.TodoList, error)
}

// Repository is the persistence gateway for todo lists. Create assigns the
// list id, createdAt and item ids; Save assigns ids to items that have none.
// FindByID, Save and DeleteByID return model.ErrNotFound for unknown ids.
type Repository interface {
	TitleFinder
	FindAll(ctx context.Context) ([]model.TodoList, error)
	FindByID(ctx context.Context, id string) (model.TodoList, error)
	Create(ctx context.Context, list model.TodoList) (model.TodoList, error)
	Save(ctx context.Context, list model.TodoList) (model.TodoList, error)
	DeleteByID(ctx context.Context, id string) error
}
