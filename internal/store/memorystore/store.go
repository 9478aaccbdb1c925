package memorystore

import (
	"context"
	"sync"
	"time"

	"todo-lists-api/internal/ids"
	"todo-lists-api/internal/model"
)

// ListStore keeps todo lists in memory, in creation order.
type ListStore struct {
	mu    sync.RWMutex
	order []string
	lists map[string]model.TodoList
	now   func() time.Time
}

func NewListStore() *ListStore {
	return &ListStore{
		lists: make(map[string]model.TodoList),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *ListStore) FindAll(ctx context.Context) ([]model.TodoList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.TodoList, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.lists[id].Clone())
	}
	return out, nil
}

func (s *ListStore) FindByID(ctx context.Context, id string) (model.TodoList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.lists[id]
	if !ok {
		return model.TodoList{}, model.ErrNotFound
	}
	return l.Clone(), nil
}

func (s *ListStore) FindByTitle(ctx context.Context, title, excludeID string) ([]model.TodoList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.TodoList
	for _, id := range s.order {
		l := s.lists[id]
		if l.Title == title && l.ID != excludeID {
			out = append(out, l.Clone())
		}
	}
	return out, nil
}

func (s *ListStore) Create(ctx context.Context, list model.TodoList) (model.TodoList, error) {
	l := list.Clone()
	l.ID = ids.NewID()
	l.CreatedAt = s.now()
	for i := range l.Items {
		l.Items[i].ID = ""
	}
	ids.AssignItemIDs(l.Items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[l.ID] = l
	s.order = append(s.order, l.ID)
	return l.Clone(), nil
}

// Save replaces the title and items of an existing list. ID and CreatedAt
// of the stored record are preserved.
func (s *ListStore) Save(ctx context.Context, list model.TodoList) (model.TodoList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.lists[list.ID]
	if !ok {
		return model.TodoList{}, model.ErrNotFound
	}

	updated := list.Clone()
	updated.CreatedAt = cur.CreatedAt
	ids.AssignItemIDs(updated.Items)
	s.lists[list.ID] = updated
	return updated.Clone(), nil
}

func (s *ListStore) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lists[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.lists, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *ListStore) PingContext(ctx context.Context) error { return nil }

func (s *ListStore) Close() error { return nil }
