package gantt

import (
	"errors"
	"fmt"
)

// Validation and lookup errors returned by the store and roster.
// Callers match them with errors.Is; the returned errors carry context.
var (
	ErrInvalidName       = errors.New("invalid task name")
	ErrDuplicateName     = errors.New("duplicate task name")
	ErrInvalidDateRange  = errors.New("end date must be after start date")
	ErrInvalidCompletion = errors.New("completion fraction must be within [0, 1]")
	ErrNotFound          = errors.New("task not found")
	ErrEmptyCollection   = errors.New("no tasks")
	ErrSelfDependency    = errors.New("task cannot depend on itself")
	ErrInvalidMember     = errors.New("invalid team member name")
	ErrDuplicateMember   = errors.New("team member already exists")
	ErrMemberInUse       = errors.New("team member is still assigned to a task")
	ErrUnknownMember     = errors.New("unknown team member")
)

// DiagnosticKind classifies a non-fatal problem found while building a chart.
type DiagnosticKind string

const (
	// DanglingDependency marks a dependency edge whose target no longer exists.
	DanglingDependency DiagnosticKind = "dangling_dependency"
	// PaletteExhausted marks a roster larger than the palette; colors repeat.
	PaletteExhausted DiagnosticKind = "palette_exhausted"
	// UnknownAssignee marks a task whose assignee is not on the roster.
	UnknownAssignee DiagnosticKind = "unknown_assignee"
)

// Diagnostic is a warning surfaced alongside a rendered result. The chart is
// still drawn; the offending arrow is omitted or a color is reused.
type Diagnostic struct {
	Kind    DiagnosticKind
	Task    string
	Subject string
	Message string
}

func (d Diagnostic) String() string {
	if d.Task == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: task %q: %s", d.Kind, d.Task, d.Message)
}
