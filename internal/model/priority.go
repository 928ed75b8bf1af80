package model

import "strings"

// Priority is the urgency of a task. Ranking follows declaration order:
// low < medium < high.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is assigned to new tasks that don't name one.
const DefaultPriority = PriorityMedium

var priorities = [...]Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Priorities returns every valid priority, least urgent first.
// The slice is a fresh copy on each call.
func Priorities() []Priority {
	out := make([]Priority, len(priorities))
	copy(out, priorities[:])
	return out
}

// IsValidPriority reports whether p is one of Priorities().
func IsValidPriority(p Priority) bool {
	return p.Rank() >= 0
}

// Rank is the urgency of p (0 = low), or -1 if p is not a valid priority.
func (p Priority) Rank() int {
	for i, v := range priorities {
		if v == p {
			return i
		}
	}
	return -1
}

// Raise returns the next more urgent priority; high stays high.
func (p Priority) Raise() Priority {
	r := p.Rank()
	if r < 0 || r == len(priorities)-1 {
		return p
	}
	return priorities[r+1]
}

// Lower returns the next less urgent priority; low stays low.
func (p Priority) Lower() Priority {
	r := p.Rank()
	if r <= 0 {
		return p
	}
	return priorities[r-1]
}

func (p Priority) String() string { return string(p) }

// ParsePriority maps user input to a Priority, case-insensitively.
func ParsePriority(in string) (Priority, bool) {
	v := strings.ToLower(strings.TrimSpace(in))
	if v == "med" {
		return PriorityMedium, true
	}
	p := Priority(v)
	if !IsValidPriority(p) {
		return "", false
	}
	return p, true
}
