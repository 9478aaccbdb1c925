package todolist

import (
	"fmt"
	"strings"
)

const (
	MsgTitleRequired  = "Title is required"
	MsgItemsRequired  = "List must have items"
	MsgItemEmpty      = "Todo item cannot be empty"
	MsgDuplicateItems = "There are duplicate todo items"
	MsgTitleTaken     = "There is already a list with this title"
)

type FieldError struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

// ValidationError carries every rule that failed for a payload.
type ValidationError struct {
	Problems []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, fmt.Sprintf("%s: %s", p.Field, p.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field, msg string) {
	e.Problems = append(e.Problems, FieldError{Message: msg, Field: field})
}
