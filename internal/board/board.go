// Package board is an interactive Kanban view over a task store.
//
// Columns follow the status registry. The board never keeps its own copy of
// the truth: every key that changes a task goes through the store and the
// columns are rebuilt from GroupByStatus afterwards.
package board

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/taskboard/internal/errors"
	"github.com/Makepad-fr/taskboard/internal/model"
	"github.com/Makepad-fr/taskboard/internal/store"
	"github.com/Makepad-fr/taskboard/internal/ui"
)

type mode int

const (
	browsing mode = iota
	adding
	editing
)

const (
	defaultWidth  = 100
	defaultHeight = 24
)

type column struct {
	status model.Status
	list   list.Model
}

// Model is the Bubble Tea model of the board.
type Model struct {
	store *store.Store
	keys  keyMap
	help  help.Model
	input textinput.Model

	columns []column
	focus   int

	mode   mode
	editID string

	// Single-level undo of the last delete.
	undo *model.Task

	message string
	failed  bool

	width, height int
}

// New builds a board over s.
func New(s *store.Store) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		store:  s,
		keys:   defaultKeys(),
		help:   help.New(),
		input:  ti,
		width:  defaultWidth,
		height: defaultHeight,
	}
	for _, st := range model.Statuses() {
		l := list.New(nil, itemDelegate{}, 0, 0)
		l.SetShowTitle(false)
		l.SetShowStatusBar(false)
		l.SetShowHelp(false)
		l.SetFilteringEnabled(false)
		l.DisableQuitKeybindings()
		m.columns = append(m.columns, column{status: st, list: l})
	}
	m.resize()
	m.refresh("")
	return m
}

// Run starts the board in the alternate screen and blocks until the user quits.
func Run(s *store.Store, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(New(s), opts...).Run(); err != nil {
		return errors.WithStackTrace(err)
	}
	return nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if m.mode != browsing {
			return m.updateInput(msg)
		}
		return m.updateBrowsing(msg)
	}

	if m.mode != browsing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.setFocus(m.focus - 1)
	case key.Matches(msg, m.keys.Right):
		m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.Forward):
		m.move(model.Status.Next)
	case key.Matches(msg, m.keys.Back):
		m.move(model.Status.Prev)
	case key.Matches(msg, m.keys.Raise):
		m.prioritize(model.Priority.Raise)
	case key.Matches(msg, m.keys.Lower):
		m.prioritize(model.Priority.Lower)
	case key.Matches(msg, m.keys.Add):
		cmd := m.startInput(adding, "", "New "+string(m.focused())+" task")
		return m, cmd
	case key.Matches(msg, m.keys.Edit):
		t, ok := m.selected()
		if !ok {
			m.info("nothing to edit")
			return m, nil
		}
		m.editID = t.ID
		cmd := m.startInput(editing, t.Title, "Task title")
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		m.remove()
	case key.Matches(msg, m.keys.Undo):
		m.restore()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		var cmd tea.Cmd
		m.columns[m.focus].list, cmd = m.columns[m.focus].list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.stopInput()
		m.message = ""
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		title := m.input.Value()
		var (
			t   model.Task
			err error
		)
		if m.mode == adding {
			t, err = m.store.Create(store.CreateInput{Title: title, Status: m.focused()})
		} else {
			t, err = m.store.Update(m.editID, store.Patch{Title: &title})
		}
		if err != nil {
			m.fail(err)
			return m, nil
		}

		verb := "added"
		if m.mode == editing {
			verb = "renamed"
		}
		m.stopInput()
		m.refresh(t.ID)
		m.info(verb + " " + t.Title)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) startInput(md mode, value, placeholder string) tea.Cmd {
	m.mode = md
	m.message = ""
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = placeholder
	return m.input.Focus()
}

func (m *Model) stopInput() {
	m.mode = browsing
	m.editID = ""
	m.input.SetValue("")
	m.input.Blur()
}

func (m *Model) move(step func(model.Status) model.Status) {
	t, ok := m.selected()
	if !ok {
		m.info("nothing selected")
		return
	}
	next := step(t.Status)
	if next == t.Status {
		m.info(fmt.Sprintf("already %s", t.Status))
		return
	}
	if _, err := m.store.Update(t.ID, store.Patch{Status: &next}); err != nil {
		m.fail(err)
		return
	}
	m.refresh(t.ID)
	m.info("moved to " + string(next))
}

func (m *Model) prioritize(step func(model.Priority) model.Priority) {
	t, ok := m.selected()
	if !ok {
		m.info("nothing selected")
		return
	}
	next := step(t.Priority)
	if next == t.Priority {
		m.info(fmt.Sprintf("already %s priority", t.Priority))
		return
	}
	if _, err := m.store.Update(t.ID, store.Patch{Priority: &next}); err != nil {
		m.fail(err)
		return
	}
	m.refresh(t.ID)
	m.info("priority " + string(next))
}

func (m *Model) remove() {
	t, ok := m.selected()
	if !ok {
		m.info("nothing to delete")
		return
	}
	if err := m.store.Delete(t.ID); err != nil {
		m.fail(err)
		return
	}
	m.undo = &t
	m.refresh("")
	m.info("deleted " + t.Title + " (u to undo)")
}

// restore re-creates the last deleted task under its old id.
func (m *Model) restore() {
	if m.undo == nil {
		m.info("nothing to undo")
		return
	}
	t := m.undo
	created, err := m.store.Create(store.CreateInput{
		ID:       t.ID,
		Title:    t.Title,
		Points:   t.Points,
		Status:   t.Status,
		Priority: t.Priority,
	})
	if err != nil {
		m.fail(err)
		return
	}
	m.undo = nil
	m.refresh(created.ID)
	m.info("restored " + created.Title)
}

// refresh rebuilds every column from the store and, when selectID is set,
// focuses the column holding that task.
func (m *Model) refresh(selectID string) {
	for i, col := range m.store.GroupByStatus() {
		items := make([]list.Item, len(col.Tasks))
		for j, t := range col.Tasks {
			items[j] = taskItem{task: t}
		}
		l := &m.columns[i].list
		l.SetItems(items)

		if n := len(items); n > 0 && l.Index() >= n {
			l.Select(n - 1)
		}
		for j, t := range col.Tasks {
			if selectID != "" && t.ID == selectID {
				m.focus = i
				l.Select(j)
			}
		}
	}
	m.setFocus(m.focus)
}

func (m *Model) setFocus(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(m.columns) {
		i = len(m.columns) - 1
	}
	m.focus = i
	for j := range m.columns {
		m.columns[j].list.SetDelegate(itemDelegate{focused: j == i})
	}
}

func (m *Model) resize() {
	w := max(m.width/len(m.columns)-4, 16)
	h := max(m.height-10, 3)
	for i := range m.columns {
		m.columns[i].list.SetSize(w, h)
	}
	m.help.Width = m.width
	m.input.Width = max(m.width-8, 10)
}

func (m Model) focused() model.Status {
	return m.columns[m.focus].status
}

func (m Model) selected() (model.Task, bool) {
	it, ok := m.columns[m.focus].list.SelectedItem().(taskItem)
	if !ok {
		return model.Task{}, false
	}
	return it.task, true
}

func (m *Model) info(msg string) {
	m.message, m.failed = msg, false
}

func (m *Model) fail(err error) {
	m.message, m.failed = err.Error(), true
}

func (m Model) View() string {
	th := ui.Current()
	st := m.store.Stats()

	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d   %s",
		th.Title.Render("Board"),
		th.StatusBadge(model.StatusDone), st.Done(),
		th.StatusBadge(model.StatusInProgress), st.ByStatus[model.StatusInProgress],
		th.Accent.Render("Total"), st.Total,
		th.Muted.Render(ui.ProgressBar(st.Done(), st.Total, 20)),
	)

	views := make([]string, len(m.columns))
	for i, col := range m.columns {
		style := lipgloss.NewStyle().
			Border(th.Border).
			BorderForeground(th.BorderColor).
			Padding(0, 1).
			Width(col.list.Width() + 2)
		if i == m.focus {
			style = style.BorderForeground(th.Accent.GetForeground())
		}

		body := th.StatusHeader(col.status, len(col.list.Items())) + "\n\n"
		if len(col.list.Items()) == 0 {
			body += th.Muted.Render("(empty)")
		} else {
			body += col.list.View()
		}
		views[i] = style.Render(body)
	}

	parts := []string{header, lipgloss.JoinHorizontal(lipgloss.Top, views...)}
	if m.mode != browsing {
		title := "Add task to " + string(m.focused())
		if m.mode == editing {
			title = "Edit task"
		}
		parts = append(parts, ui.PanelString(title+"\n"+m.input.View()))
	}
	if m.message != "" {
		style := th.Muted
		if m.failed {
			style = th.Error
		}
		parts = append(parts, style.Render(m.message))
	}
	parts = append(parts, th.Muted.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
