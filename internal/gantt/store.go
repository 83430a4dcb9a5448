package gantt

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// Direction selects the neighbour a task is swapped with.
type Direction int

const (
	Up Direction = iota
	Down
)

// depRef is one dependency edge. A resolved edge holds the id of the task
// depended upon; a dangling edge has no id and keeps the name it was given.
type depRef struct {
	id   TaskID
	name string
}

type record struct {
	Task
	deps []depRef
}

// Store is the ordered collection of tasks. Its order is the render order,
// top to bottom. Every mutation validates first and then commits the change
// together with the recomputed derived fields, so a failed call leaves the
// store untouched.
//
// A Store is not safe for concurrent use.
type Store struct {
	order  []*record
	byID   map[TaskID]*record
	anchor anchorState
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[TaskID]*record)}
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.order)
}

// Anchor returns the current project start, or false when the store is empty.
func (s *Store) Anchor() (time.Time, bool) {
	return s.anchor.date, s.anchor.set
}

// Insert adds a task at the top of the order.
func (s *Store) Insert(in TaskInput) (TaskID, error) {
	return s.add(in, true)
}

// Append adds a task at the bottom of the order. Readers use it so tasks
// keep their file order.
func (s *Store) Append(in TaskInput) (TaskID, error) {
	return s.add(in, false)
}

func (s *Store) add(in TaskInput, front bool) (TaskID, error) {
	if err := in.validate(); err != nil {
		return "", err
	}
	if _, ok := s.FindByName(in.Name); ok {
		return "", fmt.Errorf("%w: %q", ErrDuplicateName, in.Name)
	}
	deps, err := s.resolveDeps(in.Name, in.Dependencies)
	if err != nil {
		return "", err
	}

	r := &record{
		Task: Task{
			ID:         newTaskID(),
			Name:       in.Name,
			Assignee:   in.Assignee,
			Start:      Date(in.Start),
			End:        Date(in.End),
			Completion: in.Completion,
		},
		deps: deps,
	}

	order := make([]*record, 0, len(s.order)+1)
	if front {
		order = append(order, r)
		order = append(order, s.order...)
	} else {
		order = append(order, s.order...)
		order = append(order, r)
	}

	full := s.anchor.movedBy(nil, &r.Start)
	if err := s.commit(order, r, full); err != nil {
		return "", err
	}
	s.byID[r.ID] = r
	s.rebind(r)
	return r.ID, nil
}

// Update replaces the name, assignee, dates and completion of a task. The
// dependency set is left as is; use the dependency methods to change it.
func (s *Store) Update(id TaskID, in TaskInput) error {
	old, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	if err := in.validate(); err != nil {
		return err
	}
	if other, ok := s.FindByName(in.Name); ok && other != id {
		return fmt.Errorf("%w: %q", ErrDuplicateName, in.Name)
	}
	if in.Name != old.Name && old.depIndex("", in.Name) >= 0 {
		return fmt.Errorf("%w: %q", ErrSelfDependency, in.Name)
	}

	updated := &record{
		Task: Task{
			ID:         id,
			Name:       in.Name,
			Assignee:   in.Assignee,
			Start:      Date(in.Start),
			End:        Date(in.End),
			Completion: in.Completion,
		},
		deps: slices.Clone(old.deps),
	}
	order := slices.Clone(s.order)
	order[s.indexOf(id)] = updated

	full := s.anchor.movedBy(&old.Start, &updated.Start)
	if err := s.commit(order, updated, full); err != nil {
		return err
	}
	s.byID[id] = updated
	if updated.Name != old.Name {
		s.rebind(updated)
	}
	return nil
}

// Remove deletes a task. Edges from other tasks to it are kept as dangling
// names.
func (s *Store) Remove(id TaskID) error {
	r, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: id %s", ErrNotFound, id)
	}

	order := slices.DeleteFunc(slices.Clone(s.order), func(o *record) bool { return o.ID == id })
	full := s.anchor.movedBy(&r.Start, nil)
	if err := s.commit(order, nil, full); err != nil {
		return err
	}
	delete(s.byID, id)

	for _, o := range s.order {
		for i := range o.deps {
			if o.deps[i].id == id {
				o.deps[i] = depRef{name: r.Name}
			}
		}
	}
	return nil
}

// SwapAdjacent exchanges a task with its neighbour above or below. Moving the
// first task up or the last task down does nothing.
func (s *Store) SwapAdjacent(id TaskID, dir Direction) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if j < 0 || j >= len(s.order) {
		return nil
	}
	s.order[i], s.order[j] = s.order[j], s.order[i]
	return nil
}

// MoveTo moves a task to position, clamped to the bounds of the order.
func (s *Store) MoveTo(id TaskID, position int) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	position = max(0, min(position, len(s.order)-1))
	r := s.order[i]
	s.order = slices.Delete(s.order, i, i+1)
	s.order = slices.Insert(s.order, position, r)
	return nil
}

// SortByStart orders tasks by start date, keeping the current order between
// tasks that start on the same day.
func (s *Store) SortByStart() {
	sort.SliceStable(s.order, func(i, j int) bool {
		return s.order[i].Start.Before(s.order[j].Start)
	})
}

// AddDependency makes task id depend on the task named name. Adding an edge
// that already exists does nothing.
func (s *Store) AddDependency(id TaskID, name string) error {
	r, target, err := s.edgeEnds(id, name)
	if err != nil {
		return err
	}
	if r.depIndex(target, name) >= 0 {
		return nil
	}
	r.deps = append(r.deps, depRef{id: target})
	return nil
}

// RemoveDependency drops the edge from task id to name. The name may be a
// dangling reference.
func (s *Store) RemoveDependency(id TaskID, name string) error {
	r, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	target, _ := s.FindByName(name)
	i := r.depIndex(target, name)
	if i < 0 {
		if target == "" {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil
	}
	r.deps = slices.Delete(r.deps, i, i+1)
	return nil
}

// ToggleDependency adds the edge from task id to name when it is missing and
// removes it otherwise. It reports whether the edge exists afterwards.
func (s *Store) ToggleDependency(id TaskID, name string) (bool, error) {
	r, ok := s.byID[id]
	if !ok {
		return false, fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	target, _ := s.FindByName(name)
	if r.depIndex(target, name) >= 0 {
		return false, s.RemoveDependency(id, name)
	}
	return true, s.AddDependency(id, name)
}

// FindByName looks a task up by its exact name.
func (s *Store) FindByName(name string) (TaskID, bool) {
	for _, r := range s.order {
		if r.Name == name {
			return r.ID, true
		}
	}
	return "", false
}

// Get returns a snapshot of one task.
func (s *Store) Get(id TaskID) (Task, error) {
	r, ok := s.byID[id]
	if !ok {
		return Task{}, fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	return s.export(r), nil
}

// Tasks returns snapshots of all tasks in store order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.order))
	for i, r := range s.order {
		out[i] = s.export(r)
	}
	return out
}

// NamesInUse returns the assignees referenced by at least one task, in
// order of first appearance.
func (s *Store) NamesInUse() []string {
	var names []string
	seen := make(map[string]bool)
	for _, r := range s.order {
		if r.Assignee == "" || seen[r.Assignee] {
			continue
		}
		seen[r.Assignee] = true
		names = append(names, r.Assignee)
	}
	return names
}

// commit installs order as the new task order and refreshes derived fields:
// every task when full is set, only changed otherwise.
func (s *Store) commit(order []*record, changed *record, full bool) error {
	if !full {
		if changed != nil {
			d, err := Derive(changed.Task, s.anchor.date)
			if err != nil {
				return err
			}
			changed.Derived = d
		}
		s.order = order
		return nil
	}

	tasks := make([]Task, len(order))
	for i, r := range order {
		tasks[i] = r.Task
	}
	anchor, err := Anchor(tasks)
	if err != nil {
		s.order = order
		s.anchor = anchorState{}
		return nil
	}
	derived, err := DeriveAll(tasks, anchor)
	if err != nil {
		return err
	}
	for _, r := range order {
		r.Derived = derived[r.ID]
	}
	s.order = order
	s.anchor = anchorState{date: anchor, set: true}
	return nil
}

// resolveDeps turns dependency names into edges for a task called owner.
// Names no task carries yet are kept as dangling edges.
func (s *Store) resolveDeps(owner string, names []string) ([]depRef, error) {
	var deps []depRef
	seen := make(map[string]bool)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		if name == owner {
			return nil, fmt.Errorf("%w: %q", ErrSelfDependency, owner)
		}
		seen[name] = true
		if id, ok := s.FindByName(name); ok {
			deps = append(deps, depRef{id: id})
		} else {
			deps = append(deps, depRef{name: name})
		}
	}
	return deps, nil
}

// rebind resolves dangling edges that name r. A task that already has an
// edge to r loses the dangling one.
func (s *Store) rebind(r *record) {
	for _, o := range s.order {
		if o == r {
			continue
		}
		i := o.depIndex("", r.Name)
		if i < 0 {
			continue
		}
		if o.depIndex(r.ID, "") >= 0 {
			o.deps = slices.Delete(o.deps, i, i+1)
		} else {
			o.deps[i] = depRef{id: r.ID}
		}
	}
}

func (s *Store) edgeEnds(id TaskID, name string) (*record, TaskID, error) {
	r, ok := s.byID[id]
	if !ok {
		return nil, "", fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	if name == r.Name {
		return nil, "", fmt.Errorf("%w: %q", ErrSelfDependency, name)
	}
	target, ok := s.FindByName(name)
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return r, target, nil
}

func (s *Store) indexOf(id TaskID) int {
	return slices.IndexFunc(s.order, func(r *record) bool { return r.ID == id })
}

func (s *Store) export(r *record) Task {
	t := r.Task
	t.Dependencies = make([]string, 0, len(r.deps))
	for _, d := range r.deps {
		if d.id == "" {
			t.Dependencies = append(t.Dependencies, d.name)
			continue
		}
		if target, ok := s.byID[d.id]; ok {
			t.Dependencies = append(t.Dependencies, target.Name)
		}
	}
	return t
}

// depIndex finds the edge to target, or to the dangling name when target is
// empty.
func (r *record) depIndex(target TaskID, name string) int {
	return slices.IndexFunc(r.deps, func(d depRef) bool {
		if target != "" {
			return d.id == target
		}
		return d.id == "" && d.name == name
	})
}
