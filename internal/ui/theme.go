package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/taskboard/internal/model"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done                                lipgloss.Style

	// Border frames panels and board columns.
	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor

	StatusSym map[model.Status]string
	Priority  map[model.Priority]lipgloss.Style
	Cursor    string
}

var current = classic()

// SetTheme switches the current theme. Unknown names select classic and report false.
func SetTheme(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		current = neon()
	case "mono":
		current = mono()
	case "classic", "":
		current = classic()
	default:
		current = classic()
		return false
	}
	return true
}

// Current returns the active theme.
func Current() Theme { return current }

func classic() Theme {
	return Theme{
		Name:     "classic",
		Title:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),

		Border:      lipgloss.NormalBorder(),
		BorderColor: lipgloss.Color("8"),

		StatusSym: map[model.Status]string{
			model.StatusTodo:       "☐",
			model.StatusInProgress: "◐",
			model.StatusDone:       "☑",
		},
		Priority: map[model.Priority]lipgloss.Style{
			model.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			model.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			model.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		},
		Cursor: "> ",
	}
}

func neon() Theme {
	return Theme{
		Name:     "neon",
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13")),
		Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),

		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("13"),

		StatusSym: map[model.Status]string{
			model.StatusTodo:       "◻",
			model.StatusInProgress: "◩",
			model.StatusDone:       "◼",
		},
		Priority: map[model.Priority]lipgloss.Style{
			model.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			model.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			model.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		},
		Cursor: "▶ ",
	}
}

// mono carries no colors at all.
func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:     "mono",
		Title:    plain,
		Muted:    plain,
		Accent:   plain,
		Success:  plain,
		Error:    plain,
		Pending:  plain,
		Selected: plain,
		Done:     plain,

		Border:      lipgloss.ASCIIBorder(),
		BorderColor: lipgloss.NoColor{},

		StatusSym: map[model.Status]string{
			model.StatusTodo:       "[ ]",
			model.StatusInProgress: "[~]",
			model.StatusDone:       "[x]",
		},
		Priority: map[model.Priority]lipgloss.Style{
			model.PriorityLow:    plain,
			model.PriorityMedium: plain,
			model.PriorityHigh:   plain,
		},
		Cursor: "> ",
	}
}

// StatusStyle colors a status the way its column header is drawn.
func (t Theme) StatusStyle(st model.Status) lipgloss.Style {
	switch st {
	case model.StatusDone:
		return t.Success
	case model.StatusInProgress:
		return t.Pending
	default:
		return t.Accent
	}
}

// StatusBadge renders the status symbol, e.g. "☑".
func (t Theme) StatusBadge(st model.Status) string {
	sym, ok := t.StatusSym[st]
	if !ok {
		sym = "?"
	}
	return t.StatusStyle(st).Render(sym)
}

// PriorityBadge renders a priority as "[high]".
func (t Theme) PriorityBadge(p model.Priority) string {
	style, ok := t.Priority[p]
	if !ok {
		style = t.Muted
	}
	return style.Render("[" + string(p) + "]")
}

// StatusHeader renders a column title, e.g. "in-progress (2)".
func (t Theme) StatusHeader(st model.Status, n int) string {
	return t.StatusStyle(st).Inherit(t.Title).Render(string(st)) + t.Muted.Render(" ("+strconv.Itoa(n)+")")
}
