package cli

import (
	"fmt"
	"strconv"

	"github.com/Makepad-fr/taskboard/internal/model"
	"github.com/Makepad-fr/taskboard/internal/store"
	"github.com/Makepad-fr/taskboard/internal/ui"
)

const (
	shortIDLen  = 8
	maxTitleLen = 60
)

// listLines renders the ls panel: a header with counts and progress, then the
// tasks either flat or one section per status.
func listLines(st store.Stats, tasks []model.Task, group bool) []string {
	th := ui.Current()

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d  %s %d",
		th.Title.Render("Tasks"),
		th.StatusBadge(model.StatusTodo), st.ByStatus[model.StatusTodo],
		th.StatusBadge(model.StatusInProgress), st.ByStatus[model.StatusInProgress],
		th.StatusBadge(model.StatusDone), st.Done(),
		th.Accent.Render("Total"), st.Total,
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, th.Muted.Render(ui.ProgressBar(st.Done(), st.Total, 28)))
	if st.Points > 0 {
		lines = append(lines, th.Muted.Render("points "+strconv.FormatFloat(st.Points, 'g', -1, 64)))
	}
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(tasks)...)
	} else {
		lines = append(lines, flatLines(tasks)...)
	}
	lines = append(lines, "")
	lines = append(lines, th.Muted.Render("Tip: add with `taskboard add -priority high \"Write docs\"`"))
	return lines
}

func flatLines(tasks []model.Task) []string {
	th := ui.Current()
	if len(tasks) == 0 {
		return []string{th.Muted.Render("no tasks")}
	}
	out := make([]string, 0, len(tasks))
	for i, t := range tasks {
		idx := fmt.Sprintf("%2d.", i+1)
		title := ui.Truncate(t.Title, maxTitleLen)
		if t.Status == model.StatusDone {
			title = th.Done.Render(title)
		}
		line := fmt.Sprintf("%s %s %s %s",
			th.Muted.Render(idx), th.StatusBadge(t.Status), title, th.PriorityBadge(t.Priority))
		if t.HasPoints() {
			line += th.Muted.Render(" (" + strconv.FormatFloat(*t.Points, 'g', -1, 64) + ")")
		}
		line += " " + th.Muted.Render(shortID(t.ID))
		out = append(out, line)
	}
	return out
}

// groupLines keeps the order of tasks within each status section.
func groupLines(tasks []model.Task) []string {
	th := ui.Current()

	byStatus := make(map[model.Status][]model.Task, 3)
	for _, t := range tasks {
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}

	var lines []string
	for i, st := range model.Statuses() {
		if i > 0 {
			lines = append(lines, "")
		}
		section := byStatus[st]
		lines = append(lines, th.StatusHeader(st, len(section)))
		if len(section) == 0 {
			lines = append(lines, th.Muted.Render("(none)"))
			continue
		}
		lines = append(lines, flatLines(section)...)
	}
	return lines
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}
