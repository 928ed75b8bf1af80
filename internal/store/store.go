// Package store holds tasks in memory and enforces the task model's invariants.
//
// Every operation runs under a single mutex, so a Store may be shared between
// goroutines. Tasks go in and come out as values: mutating a returned Task never
// changes what the store holds.
package store

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Makepad-fr/taskboard/internal/log"
	"github.com/Makepad-fr/taskboard/internal/model"
)

// Store is an in-memory task collection keyed by id.
type Store struct {
	mu    sync.Mutex
	tasks map[string]*model.Task
	order []string // ids in insertion order

	newID func() string
	log   logrus.FieldLogger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator used for tasks created without an id.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger sets the logger that records mutations at debug level.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) { s.log = log }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		tasks: make(map[string]*model.Task),
		newID: uuid.NewString,
		log:   log.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates in and adds a new task.
func (s *Store) Create(in CreateInput) (model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if err := validateTitle(title); err != nil {
		return model.Task{}, err
	}
	if err := validatePoints(in.Points); err != nil {
		return model.Task{}, err
	}

	status := in.Status
	if status == "" {
		status = model.DefaultStatus
	}
	if err := validateStatus(status); err != nil {
		return model.Task{}, err
	}

	priority := in.Priority
	if priority == "" {
		priority = model.DefaultPriority
	}
	if err := validatePriority(priority); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(in.ID)
	if id == "" && in.ID != "" {
		return model.Task{}, invalid("id", in.ID, "must not be blank")
	}
	if id == "" {
		id = s.freshID()
	} else if _, exists := s.tasks[id]; exists {
		return model.Task{}, invalid("id", id, "already exists")
	}

	t := &model.Task{
		ID:       id,
		Title:    title,
		Status:   status,
		Priority: priority,
	}
	if in.Points != nil {
		p := *in.Points
		t.Points = &p
	}

	s.tasks[id] = t
	s.order = append(s.order, id)

	s.log.WithFields(logrus.Fields{"id": id, "status": status, "priority": priority}).Debug("task created")
	return t.Clone(), nil
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return model.Task{}, notFound(id)
	}
	return t.Clone(), nil
}

// Update applies the fields present in p to the task with the given id.
// All fields are validated before any is written.
func (s *Store) Update(id string, p Patch) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return model.Task{}, notFound(id)
	}

	next := t.Clone()

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if err := validateTitle(title); err != nil {
			return model.Task{}, err
		}
		next.Title = title
	}

	switch {
	case p.Points != nil && p.ClearPoints:
		return model.Task{}, invalid("points", nil, "cannot both set and clear the estimate")
	case p.Points != nil:
		if err := validatePoints(p.Points); err != nil {
			return model.Task{}, err
		}
		v := *p.Points
		next.Points = &v
	case p.ClearPoints:
		next.Points = nil
	}

	if p.Status != nil {
		if err := validateStatus(*p.Status); err != nil {
			return model.Task{}, err
		}
		next.Status = *p.Status
	}

	if p.Priority != nil {
		if err := validatePriority(*p.Priority); err != nil {
			return model.Task{}, err
		}
		next.Priority = *p.Priority
	}

	*t = next

	if !p.IsEmpty() {
		s.log.WithField("id", id).Debug("task updated")
	}
	return t.Clone(), nil
}

// Delete removes the task with the given id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return notFound(id)
	}
	delete(s.tasks, id)

	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.log.WithField("id", id).Debug("task deleted")
	return nil
}

// List returns the tasks matching f. A filter value outside the registry matches nothing.
func (s *Store) List(f Filter) []model.Task {
	s.mu.Lock()
	out := make([]model.Task, 0, len(s.order))
	for _, id := range s.order {
		t := s.tasks[id]
		if f.match(t) {
			out = append(out, t.Clone())
		}
	}
	s.mu.Unlock()

	var rank func(model.Task) int
	switch f.SortBy {
	case SortStatus:
		rank = func(t model.Task) int { return t.Status.Rank() }
	case SortPriority:
		rank = func(t model.Task) int { return t.Priority.Rank() }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if f.Descending {
			return rank(out[i]) > rank(out[j])
		}
		return rank(out[i]) < rank(out[j])
	})
	return out
}

// GroupByStatus returns one column per status in workflow order. Columns
// without tasks are present with an empty slice.
func (s *Store) GroupByStatus() []Column {
	statuses := model.Statuses()
	cols := make([]Column, len(statuses))
	index := make(map[model.Status]int, len(statuses))
	for i, st := range statuses {
		cols[i] = Column{Status: st, Tasks: []model.Task{}}
		index[st] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		t := s.tasks[id]
		i := index[t.Status]
		cols[i].Tasks = append(cols[i].Tasks, t.Clone())
	}
	return cols
}

// Len returns the number of tasks held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Stats counts tasks per status and sums their estimates.
func (s *Store) Stats() Stats {
	st := Stats{ByStatus: make(map[model.Status]int, 3)}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		t := s.tasks[id]
		st.Total++
		st.ByStatus[t.Status]++
		if t.Points != nil {
			st.Points += *t.Points
		}
	}
	return st
}

// freshID must be called with s.mu held.
func (s *Store) freshID() string {
	for {
		id := s.newID()
		if _, exists := s.tasks[id]; !exists && id != "" {
			return id
		}
	}
}

func validateTitle(title string) error {
	if title == "" {
		return invalid("title", nil, "must not be empty")
	}
	return nil
}

func validatePoints(p *float64) error {
	if p == nil {
		return nil
	}
	if math.IsNaN(*p) || math.IsInf(*p, 0) {
		return invalid("points", *p, "must be a finite number")
	}
	if *p < 0 {
		return invalid("points", *p, "must not be negative")
	}
	return nil
}

func validateStatus(st model.Status) error {
	if !model.IsValidStatus(st) {
		return invalid("status", st, "must be one of "+joinStatuses())
	}
	return nil
}

func validatePriority(p model.Priority) error {
	if !model.IsValidPriority(p) {
		return invalid("priority", p, "must be one of "+joinPriorities())
	}
	return nil
}

func joinStatuses() string {
	names := make([]string, 0, 3)
	for _, st := range model.Statuses() {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}

func joinPriorities() string {
	names := make([]string, 0, 3)
	for _, p := range model.Priorities() {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}
