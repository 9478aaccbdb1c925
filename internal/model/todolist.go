package model

import "time"

type TodoItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type TodoList struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"createdAt"`
	Items     []TodoItem `json:"items"`
}

// Clone returns a copy that shares no item storage with l.
func (l TodoList) Clone() TodoList {
	out := l
	out.Items = append([]TodoItem(nil), l.Items...)
	return out
}

type ListSummary struct {
	TodoList
	ItemCount          int `json:"itemCount"`
	CompletedItemCount int `json:"completedItemCount"`
}

func Summarize(l TodoList) ListSummary {
	completed := 0
	for _, it := range l.Items {
		if it.Completed {
			completed++
		}
	}
	return ListSummary{
		TodoList:           l,
		ItemCount:          len(l.Items),
		CompletedItemCount: completed,
	}
}

// ItemInput is an item as submitted by a client. ID is empty for items
// that have not been persisted yet.
type ItemInput struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	Completed *bool  `json:"completed,omitempty"`
}

func (in ItemInput) IsCompleted() bool {
	return in.Completed != nil && *in.Completed
}

type ListInput struct {
	Title string      `json:"title"`
	Items []ItemInput `json:"items"`
}
