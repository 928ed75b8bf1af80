package store

import "github.com/Makepad-fr/taskboard/internal/model"

// CreateInput describes a new task. Zero values mean "not supplied":
// an empty ID is generated, an empty Status or Priority takes the default.
type CreateInput struct {
	ID       string         `json:"id,omitempty"`
	Title    string         `json:"title"`
	Points   *float64       `json:"points,omitempty"`
	Status   model.Status   `json:"status,omitempty"`
	Priority model.Priority `json:"priority,omitempty"`
}

// Patch is a partial update. Only non-nil fields are applied.
// ClearPoints removes the estimate and cannot be combined with Points.
type Patch struct {
	Title       *string         `mapstructure:"title"`
	Points      *float64        `mapstructure:"points"`
	ClearPoints bool            `mapstructure:"-"`
	Status      *model.Status   `mapstructure:"status"`
	Priority    *model.Priority `mapstructure:"priority"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Points == nil && !p.ClearPoints && p.Status == nil && p.Priority == nil
}

// SortKey selects the ordering of List results.
type SortKey int

const (
	// SortInsertion keeps creation order.
	SortInsertion SortKey = iota
	SortStatus
	SortPriority
)

// Filter narrows and orders List results. Empty fields match everything.
type Filter struct {
	Status   model.Status
	Priority model.Priority
	SortBy   SortKey
	// Descending reverses the rank order of SortStatus/SortPriority.
	// Ties still keep insertion order.
	Descending bool
}

func (f Filter) match(t *model.Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	return true
}

// Column is one status together with the tasks currently holding it.
type Column struct {
	Status model.Status
	Tasks  []model.Task
}

// Stats summarises the store.
type Stats struct {
	Total    int
	ByStatus map[model.Status]int
	Points   float64
}

// Done is the number of tasks in the done column.
func (s Stats) Done() int { return s.ByStatus[model.StatusDone] }
