package gantt

import (
	"fmt"
	"slices"
	"strings"
)

// Roster is the ordered list of team members tasks can be assigned to.
// Color assignment follows roster position.
type Roster struct {
	members []string
}

// NewRoster returns a roster holding the given names, skipping blanks and
// repeats.
func NewRoster(names ...string) *Roster {
	r := &Roster{}
	for _, name := range names {
		_ = r.Add(name)
	}
	return r
}

// Members returns a copy of the roster in order.
func (r *Roster) Members() []string {
	return slices.Clone(r.members)
}

// Len returns the number of members.
func (r *Roster) Len() int {
	return len(r.members)
}

// Contains reports whether name is on the roster.
func (r *Roster) Contains(name string) bool {
	return slices.Contains(r.members, name)
}

// Add appends a member. Blank and duplicate names are rejected.
func (r *Roster) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is blank", ErrInvalidMember)
	}
	if r.Contains(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateMember, name)
	}
	r.members = append(r.members, name)
	return nil
}

// Remove deletes a member unless one of inUse names it. Pass the result of
// Store.NamesInUse.
func (r *Roster) Remove(name string, inUse []string) error {
	i := slices.Index(r.members, name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownMember, name)
	}
	if slices.Contains(inUse, name) {
		return fmt.Errorf("%w: %q", ErrMemberInUse, name)
	}
	r.members = slices.Delete(r.members, i, i+1)
	return nil
}

// Merge appends every name not yet on the roster. Loading a plan seeds the
// roster from its assignees this way.
func (r *Roster) Merge(names []string) {
	for _, name := range names {
		if strings.TrimSpace(name) != "" && !r.Contains(strings.TrimSpace(name)) {
			_ = r.Add(name)
		}
	}
}
