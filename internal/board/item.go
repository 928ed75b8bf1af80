package board

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/taskboard/internal/model"
	"github.com/Makepad-fr/taskboard/internal/ui"
)

// taskItem adapts a Task to bubbles/list.Item
type taskItem struct {
	task model.Task
}

func (i taskItem) FilterValue() string { return i.task.Title }

// itemDelegate renders one task per line. Only the focused column shows a cursor.
type itemDelegate struct {
	focused bool
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	th := ui.Current()

	title := ui.Truncate(it.task.Title, max(m.Width()-14, 8))
	if it.task.Status == model.StatusDone {
		title = th.Done.Render(title)
	}
	line := th.PriorityBadge(it.task.Priority) + " " + title
	if it.task.HasPoints() {
		line += th.Muted.Render(fmt.Sprintf(" (%g)", *it.task.Points))
	}

	prefix := "  "
	if d.focused && index == m.Index() {
		prefix = th.Selected.Render(th.Cursor)
	}
	fmt.Fprint(w, prefix+line)
}
