package client

import (
	"fmt"
	"html"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"todo-lists-api/internal/model"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	doneStyle    = lipgloss.NewStyle().Padding(0, 1).Faint(true).Strikethrough(true)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("42"))
)

// display turns stored, escaped text back into what the user typed.
func display(s string) string {
	return html.UnescapeString(s)
}

// RenderSummaries renders one row per list with its progress.
func RenderSummaries(lists []model.ListSummary) string {
	if len(lists) == 0 {
		return mutedStyle.Render("no todo lists")
	}

	rows := make([][]string, 0, len(lists))
	for _, l := range lists {
		rows = append(rows, []string{
			display(l.Title),
			fmt.Sprintf("%d/%d", l.CompletedItemCount, l.ItemCount),
			l.CreatedAt.Local().Format("2006-01-02 15:04"),
			l.ID,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("TITLE", "DONE", "CREATED", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			l := lists[row]
			if col == 1 && l.ItemCount > 0 && l.CompletedItemCount == l.ItemCount {
				return successStyle
			}
			return cellStyle
		})
	return t.String()
}

// RenderList renders a single list with one row per item.
func RenderList(l model.TodoList) string {
	rows := make([][]string, 0, len(l.Items))
	for i, it := range l.Items {
		mark := "[ ]"
		if it.Completed {
			mark = "[x]"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), mark, display(it.Text)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("#", "", "ITEM").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if l.Items[row].Completed {
				return doneStyle
			}
			return cellStyle
		})

	return titleStyle.Render(display(l.Title)) + "\n" + t.String()
}
