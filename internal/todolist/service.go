package todolist

import (
	"context"
	"fmt"
	"log/slog"

	"todo-lists-api/internal/model"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]model.ListSummary, error) {
	lists, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find todo lists: %w", err)
	}
	out := make([]model.ListSummary, 0, len(lists))
	for _, l := range lists {
		out = append(out, model.Summarize(l))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (model.TodoList, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in model.ListInput) (model.TodoList, error) {
	valid, err := Prepare(ctx, s.repo, in, "")
	if err != nil {
		return model.TodoList{}, err
	}

	items := make([]model.TodoItem, 0, len(valid.Items))
	for _, it := range valid.Items {
		items = append(items, model.TodoItem{Text: it.Text, Completed: it.IsCompleted()})
	}

	created, err := s.repo.Create(ctx, model.TodoList{Title: valid.Title, Items: items})
	if err != nil {
		return model.TodoList{}, fmt.Errorf("create todo list: %w", err)
	}
	return created, nil
}

// Update replaces the title and converges the stored items onto in.Items.
// The merged document is written with a single Save.
func (s *Service) Update(ctx context.Context, id string, in model.ListInput) (model.TodoList, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.TodoList{}, err
	}

	valid, err := Prepare(ctx, s.repo, in, existing.ID)
	if err != nil {
		return model.TodoList{}, err
	}

	items, st := Reconcile(existing.Items, valid.Items)
	if len(items) == 0 {
		// every incoming id was unknown, so nothing would survive the merge
		return model.TodoList{}, &ValidationError{Problems: []FieldError{{Field: "items", Message: MsgItemsRequired}}}
	}
	existing.Title = valid.Title
	existing.Items = items

	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return model.TodoList{}, fmt.Errorf("save todo list %s: %w", id, err)
	}

	s.logger.InfoContext(ctx, "todo list reconciled",
		"list_id", saved.ID,
		"kept", st.Kept,
		"dropped", st.Dropped,
		"inserted", st.Inserted,
	)
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete todo list %s: %w", id, err)
	}
	return nil
}
