package todolist

import "todo-lists-api/internal/model"

type Action int

const (
	Keep Action = iota
	Drop
	Insert
)

func (a Action) String() string {
	switch a {
	case Keep:
		return "keep"
	case Drop:
		return "drop"
	case Insert:
		return "insert"
	default:
		return "unknown"
	}
}

// Change is one step of converging a stored item collection onto an
// incoming one. Inserted items carry no id; persistence assigns it.
type Change struct {
	Action Action
	Item   model.TodoItem
}

type Stats struct {
	Kept     int
	Dropped  int
	Inserted int
}

// Plan matches stored items to incoming items by id. Matched items are kept
// with the incoming text and completed state, unmatched stored items are
// dropped, and every incoming item without an id is inserted in incoming
// order. Incoming ids that match nothing are ignored; when an id repeats,
// its first occurrence wins.
func Plan(stored []model.TodoItem, incoming []model.ItemInput) []Change {
	byID := make(map[string]model.ItemInput, len(incoming))
	for _, in := range incoming {
		if in.ID == "" {
			continue
		}
		if _, ok := byID[in.ID]; !ok {
			byID[in.ID] = in
		}
	}

	changes := make([]Change, 0, len(stored)+len(incoming))
	for _, it := range stored {
		in, ok := byID[it.ID]
		if !ok {
			changes = append(changes, Change{Action: Drop, Item: it})
			continue
		}
		it.Text = in.Text
		it.Completed = in.IsCompleted()
		changes = append(changes, Change{Action: Keep, Item: it})
	}

	for _, in := range incoming {
		if in.ID != "" {
			continue
		}
		changes = append(changes, Change{
			Action: Insert,
			Item:   model.TodoItem{Text: in.Text, Completed: in.IsCompleted()},
		})
	}
	return changes
}

// Apply flattens a plan into the resulting item sequence.
func Apply(changes []Change) ([]model.TodoItem, Stats) {
	var st Stats
	out := make([]model.TodoItem, 0, len(changes))
	for _, c := range changes {
		switch c.Action {
		case Keep:
			st.Kept++
			out = append(out, c.Item)
		case Insert:
			st.Inserted++
			out = append(out, c.Item)
		case Drop:
			st.Dropped++
		}
	}
	return out, st
}

func Reconcile(stored []model.TodoItem, incoming []model.ItemInput) ([]model.TodoItem, Stats) {
	return Apply(Plan(stored, incoming))
}
