// Package gantt implements the task-timeline layout engine behind a Gantt
// chart: the task store and its project-start anchor, the derived day
// offsets of every task, bar geometry, dependency arrows, and team colors.
//
// All offsets are measured in whole days from a single anchor, the earliest
// start date in the store. When the anchor moves, every task is re-derived.
package gantt

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used for task dates.
const DateLayout = "2006-01-02"

// reservedNameParts cannot appear in task names because dependency lists are
// serialized as comma separated names with "[]" as the empty marker.
var reservedNameParts = []string{"[]", ","}

// TaskID identifies a task for its whole lifetime, across renames.
type TaskID string

func newTaskID() TaskID {
	return TaskID(uuid.New().String())
}

// TaskInput holds the user-supplied fields of a task.
type TaskInput struct {
	Name         string
	Assignee     string
	Start        time.Time
	End          time.Time
	Completion   float64
	Dependencies []string
}

// Derived holds the values computed from a task's dates and the anchor.
type Derived struct {
	OffsetStart   int
	OffsetEnd     int
	Duration      int
	CompletedDays float64
}

// Task is an exported snapshot of a stored task, raw and derived fields
// together. Dependencies are names, in the order they were added.
type Task struct {
	ID           TaskID
	Name         string
	Assignee     string
	Start        time.Time
	End          time.Time
	Completion   float64
	Dependencies []string
	Derived
}

// Date truncates t to its calendar day in UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// DaysBetween returns the whole number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)).Hours() / 24)
}

// ValidateName checks a task name for emptiness and reserved substrings.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is blank", ErrInvalidName)
	}
	for _, part := range reservedNameParts {
		if strings.Contains(name, part) {
			return fmt.Errorf("%w: %q must not contain %q", ErrInvalidName, name, part)
		}
	}
	return nil
}

// validate checks everything about an input that does not depend on the
// rest of the store.
func (in TaskInput) validate() error {
	if err := ValidateName(in.Name); err != nil {
		return err
	}
	if in.Completion < 0 || in.Completion > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidCompletion, in.Completion)
	}
	if !Date(in.End).After(Date(in.Start)) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidDateRange,
			Date(in.Start).Format(DateLayout), Date(in.End).Format(DateLayout))
	}
	return nil
}
