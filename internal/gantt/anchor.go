package gantt

import "time"

// Anchor returns the earliest start date among tasks, the origin of every
// day offset. It fails with ErrEmptyCollection when tasks is empty.
func Anchor(tasks []Task) (time.Time, error) {
	if len(tasks) == 0 {
		return time.Time{}, ErrEmptyCollection
	}
	anchor := Date(tasks[0].Start)
	for _, t := range tasks[1:] {
		if start := Date(t.Start); start.Before(anchor) {
			anchor = start
		}
	}
	return anchor, nil
}

// anchorState is the store's cached anchor.
type anchorState struct {
	date time.Time
	set  bool
}

// movedBy reports whether a mutation can move the anchor. removed is the
// start date of the task leaving its old state (nil on insert), added is
// the start date of the task entering its new state (nil on remove).
//
// This is the only place deciding between a full and a local recompute.
func (a anchorState) movedBy(removed, added *time.Time) bool {
	if !a.set {
		return true
	}
	if removed != nil && !Date(*removed).After(a.date) {
		return true
	}
	if added != nil && Date(*added).Before(a.date) {
		return true
	}
	return false
}
