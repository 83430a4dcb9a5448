package gantt

import (
	"fmt"
	"time"
)

// Derive computes the derived fields of a task relative to anchor. The end
// day counts as part of the bar, hence the +1 on the duration.
func Derive(task Task, anchor time.Time) (Derived, error) {
	start, end := Date(task.Start), Date(task.End)
	if !end.After(start) {
		return Derived{}, fmt.Errorf("%w: task %q runs %s to %s", ErrInvalidDateRange,
			task.Name, start.Format(DateLayout), end.Format(DateLayout))
	}

	d := Derived{
		OffsetStart: DaysBetween(anchor, start),
		OffsetEnd:   DaysBetween(anchor, end),
	}
	d.Duration = d.OffsetEnd - d.OffsetStart + 1
	d.CompletedDays = task.Completion * float64(d.Duration)
	return d, nil
}

// DeriveAll derives every task against the same anchor. It either returns a
// result for every task or an error.
func DeriveAll(tasks []Task, anchor time.Time) (map[TaskID]Derived, error) {
	out := make(map[TaskID]Derived, len(tasks))
	for _, t := range tasks {
		d, err := Derive(t, anchor)
		if err != nil {
			return nil, err
		}
		out[t.ID] = d
	}
	return out, nil
}
