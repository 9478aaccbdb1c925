package ids

import (
	"github.com/google/uuid"

	"todo-lists-api/internal/model"
)

func NewID() string {
	return uuid.NewString()
}

// Valid reports whether id has the shape produced by NewID.
func Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// AssignItemIDs gives every item without an id a fresh one, in place.
func AssignItemIDs(items []model.TodoItem) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = NewID()
		}
	}
}
