package model

import "strings"

// Status is the workflow stage of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// DefaultStatus is assigned to new tasks that don't name one.
const DefaultStatus = StatusTodo

// statuses is the canonical workflow order. Board columns follow it.
var statuses = [...]Status{StatusTodo, StatusInProgress, StatusDone}

// Statuses returns every valid status in workflow order.
// The slice is a fresh copy on each call.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses[:])
	return out
}

// IsValidStatus reports whether s is one of Statuses().
func IsValidStatus(s Status) bool {
	return s.Rank() >= 0
}

// Rank is the position of s in workflow order, or -1 if s is not a valid status.
func (s Status) Rank() int {
	for i, v := range statuses {
		if v == s {
			return i
		}
	}
	return -1
}

// Next returns the following workflow stage; done stays done.
func (s Status) Next() Status {
	r := s.Rank()
	if r < 0 || r == len(statuses)-1 {
		return s
	}
	return statuses[r+1]
}

// Prev returns the preceding workflow stage; todo stays todo.
func (s Status) Prev() Status {
	r := s.Rank()
	if r <= 0 {
		return s
	}
	return statuses[r-1]
}

func (s Status) String() string { return string(s) }

// ParseStatus maps user input to a Status. Matching is case-insensitive
// and accepts a few spellings of in-progress.
func ParseStatus(in string) (Status, bool) {
	v := strings.ToLower(strings.TrimSpace(in))
	switch v {
	case "in_progress", "inprogress", "in progress", "doing", "wip":
		return StatusInProgress, true
	}
	s := Status(v)
	if !IsValidStatus(s) {
		return "", false
	}
	return s, true
}
