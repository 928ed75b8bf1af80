package model

// Task is the domain model for a tracked unit of work.
// Points is nil when the task is unestimated.
type Task struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Points   *float64 `json:"points,omitempty"`
	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`
}

// Clone returns a copy of t that shares no memory with it.
func (t Task) Clone() Task {
	if t.Points != nil {
		p := *t.Points
		t.Points = &p
	}
	return t
}

// HasPoints reports whether the task carries an effort estimate.
func (t Task) HasPoints() bool { return t.Points != nil }
