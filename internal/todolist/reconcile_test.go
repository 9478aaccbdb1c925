package todolist

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"todo-lists-api/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func storedItems(texts ...string) []model.TodoItem {
	out := make([]model.TodoItem, 0, len(texts))
	for i, t := range texts {
		out = append(out, model.TodoItem{ID: fmt.Sprintf("id-%d", i+1), Text: t})
	}
	return out
}

func TestReconcile_DropsMissingItems(t *testing.T) {
	stored := storedItems("a", "b", "c")
	incoming := []model.ItemInput{
		{ID: "id-1", Text: "a"},
		{ID: "id-3", Text: "c", Completed: boolPtr(true)},
	}

	got, st := Reconcile(stored, incoming)

	if len(got) != 2 || got[0].ID != "id-1" || got[1].ID != "id-3" {
		t.Fatalf("items=%+v", got)
	}
	if !got[1].Completed {
		t.Fatalf("completed not applied: %+v", got[1])
	}
	if st != (Stats{Kept: 2, Dropped: 1}) {
		t.Fatalf("stats=%+v", st)
	}
}

func TestReconcile_AppendsNewItems(t *testing.T) {
	stored := storedItems("x")
	incoming := []model.ItemInput{
		{Text: "new"},
		{ID: "id-1", Text: "x renamed"},
	}

	got, st := Reconcile(stored, incoming)

	if len(got) != 2 {
		t.Fatalf("items=%+v", got)
	}
	if got[0].ID != "id-1" || got[0].Text != "x renamed" {
		t.Fatalf("kept=%+v", got[0])
	}
	if got[1].ID != "" || got[1].Text != "new" || got[1].Completed {
		t.Fatalf("inserted=%+v", got[1])
	}
	if st != (Stats{Kept: 1, Inserted: 1}) {
		t.Fatalf("stats=%+v", st)
	}
}

func TestReconcile_UnknownIDIgnored(t *testing.T) {
	stored := storedItems("x")
	incoming := []model.ItemInput{
		{ID: "id-1", Text: "x"},
		{ID: "ghost", Text: "boo"},
	}

	got, st := Reconcile(stored, incoming)

	if len(got) != 1 || got[0].ID != "id-1" {
		t.Fatalf("items=%+v", got)
	}
	if st != (Stats{Kept: 1}) {
		t.Fatalf("stats=%+v", st)
	}
}

func TestReconcile_DuplicateIDFirstWins(t *testing.T) {
	stored := storedItems("x")
	incoming := []model.ItemInput{
		{ID: "id-1", Text: "first"},
		{ID: "id-1", Text: "second", Completed: boolPtr(true)},
	}

	got, _ := Reconcile(stored, incoming)

	if len(got) != 1 || got[0].Text != "first" || got[0].Completed {
		t.Fatalf("items=%+v", got)
	}
}

func TestReconcile_EmptyStored(t *testing.T) {
	got, st := Reconcile(nil, []model.ItemInput{{Text: "a"}, {Text: "b"}})

	if len(got) != 2 || got[0].Text != "a" || got[1].Text != "b" {
		t.Fatalf("items=%+v", got)
	}
	if st != (Stats{Inserted: 2}) {
		t.Fatalf("stats=%+v", st)
	}
}

func TestPlan_Actions(t *testing.T) {
	stored := storedItems("a", "b")
	changes := Plan(stored, []model.ItemInput{{ID: "id-2", Text: "b"}, {Text: "c"}})

	want := []Action{Drop, Keep, Insert}
	if len(changes) != len(want) {
		t.Fatalf("changes=%+v", changes)
	}
	for i, c := range changes {
		if c.Action != want[i] {
			t.Fatalf("change %d: got %s want %s", i, c.Action, want[i])
		}
	}
}

// Echoing a list back with some items removed and some added yields exactly
// the echoed survivors in stored order followed by the additions.
func TestReconcile_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "stored")
		stored := make([]model.TodoItem, n)
		for i := range stored {
			stored[i] = model.TodoItem{
				ID:        fmt.Sprintf("id-%d", i),
				Text:      fmt.Sprintf("item %d", i),
				Completed: rapid.Bool().Draw(t, "completed"),
			}
		}

		var incoming []model.ItemInput
		var wantKept []model.TodoItem
		for _, it := range stored {
			if !rapid.Bool().Draw(t, "keep") {
				continue
			}
			done := rapid.Bool().Draw(t, "done")
			incoming = append(incoming, model.ItemInput{ID: it.ID, Text: it.Text + "!", Completed: boolPtr(done)})
			wantKept = append(wantKept, model.TodoItem{ID: it.ID, Text: it.Text + "!", Completed: done})
		}
		added := rapid.SliceOf(rapid.StringMatching(`[a-z]{1,6}`)).Draw(t, "added")
		for _, txt := range added {
			incoming = append(incoming, model.ItemInput{Text: txt})
		}

		got, st := Reconcile(stored, incoming)

		if len(got) != len(wantKept)+len(added) {
			t.Fatalf("len=%d want %d", len(got), len(wantKept)+len(added))
		}
		for i, want := range wantKept {
			if got[i] != want {
				t.Fatalf("kept %d: got %+v want %+v", i, got[i], want)
			}
		}
		for i, txt := range added {
			it := got[len(wantKept)+i]
			if it.ID != "" || it.Text != txt || it.Completed {
				t.Fatalf("inserted %d: %+v", i, it)
			}
		}
		if st.Kept != len(wantKept) || st.Inserted != len(added) || st.Dropped != n-len(wantKept) {
			t.Fatalf("stats=%+v", st)
		}
	})
}
