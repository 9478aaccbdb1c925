package todolist

import (
	"context"
	"fmt"

	"todo-lists-api/internal/model"
	"todo-lists-api/internal/sanitize"
)

// Sanitize normalizes the title and every item text. It never fails.
func Sanitize(in model.ListInput) model.ListInput {
	out := model.ListInput{Title: sanitize.Text(in.Title)}
	if in.Items != nil {
		out.Items = make([]model.ItemInput, len(in.Items))
		for i, it := range in.Items {
			it.Text = sanitize.Text(it.Text)
			out.Items[i] = it
		}
	}
	return out
}

// Prepare sanitizes in and then checks every rule against the sanitized
// values. excludeID is the id of the list being updated, or empty on create.
// On failure the returned error is a *ValidationError listing all problems;
// a failing title lookup is returned as is.
func Prepare(ctx context.Context, titles TitleFinder, in model.ListInput, excludeID string) (model.ListInput, error) {
	in = Sanitize(in)
	verr := &ValidationError{}

	if in.Title == "" {
		verr.add("title", MsgTitleRequired)
	}
	if len(in.Items) == 0 {
		verr.add("items", MsgItemsRequired)
	}

	seen := make(map[string]int, len(in.Items))
	duplicate := false
	for i, it := range in.Items {
		if it.Text == "" {
			verr.add(fmt.Sprintf("items[%d].text", i), MsgItemEmpty)
		}
		seen[it.Text]++
		if seen[it.Text] > 1 {
			duplicate = true
		}
	}
	if duplicate {
		verr.add("items", MsgDuplicateItems)
	}

	if in.Title != "" {
		existing, err := titles.FindByTitle(ctx, in.Title, excludeID)
		if err != nil {
			return model.ListInput{}, fmt.Errorf("check title: %w", err)
		}
		if len(existing) > 0 {
			verr.add("title", MsgTitleTaken)
		}
	}

	if len(verr.Problems) > 0 {
		return model.ListInput{}, verr
	}
	return in, nil
}
