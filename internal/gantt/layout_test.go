package gantt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchor(t *testing.T) {
	_, err := Anchor(nil)
	require.ErrorIs(t, err, ErrEmptyCollection)

	tasks := []Task{
		{Name: "a", Start: day(t, "2024-03-04")},
		{Name: "b", Start: day(t, "2024-02-28")},
		{Name: "c", Start: day(t, "2024-03-01")},
	}
	anchor, err := Anchor(tasks)
	require.NoError(t, err)
	assert.Equal(t, day(t, "2024-02-28"), anchor)
}

func TestAnchorMovedBy(t *testing.T) {
	a := anchorState{date: day(t, "2024-01-10"), set: true}
	earlier, same, later := day(t, "2024-01-05"), day(t, "2024-01-10"), day(t, "2024-01-20")

	assert.True(t, anchorState{}.movedBy(nil, &later), "first task always sets the anchor")
	assert.True(t, a.movedBy(nil, &earlier))
	assert.False(t, a.movedBy(nil, &same))
	assert.False(t, a.movedBy(nil, &later))
	assert.True(t, a.movedBy(&same, &later), "anchor holder edited")
	assert.True(t, a.movedBy(&same, nil), "anchor holder removed")
	assert.False(t, a.movedBy(&later, &later))
	assert.False(t, a.movedBy(&later, nil))
}

func TestDerive(t *testing.T) {
	anchor := day(t, "2024-01-01")
	d, err := Derive(Task{Name: "x", Start: day(t, "2024-01-03"), End: day(t, "2024-01-10"), Completion: 0.25}, anchor)
	require.NoError(t, err)
	assert.Equal(t, Derived{OffsetStart: 2, OffsetEnd: 9, Duration: 8, CompletedDays: 2}, d)

	_, err = Derive(Task{Name: "x", Start: day(t, "2024-01-03"), End: day(t, "2024-01-03")}, anchor)
	require.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = DeriveAll([]Task{
		{ID: "1", Start: day(t, "2024-01-01"), End: day(t, "2024-01-02")},
		{ID: "2", Start: day(t, "2024-01-05"), End: day(t, "2024-01-02")},
	}, anchor)
	require.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestLayout(t *testing.T) {
	tasks := []Task{
		{ID: "a", Name: "A", Assignee: "x", Derived: Derived{OffsetStart: 0, OffsetEnd: 4, Duration: 5, CompletedDays: 2.5}},
		{ID: "b", Name: "B", Assignee: "y", Derived: Derived{OffsetStart: 3, OffsetEnd: 5, Duration: 3, CompletedDays: 0}},
	}
	bars := Layout(tasks)
	require.Len(t, bars, 2)

	assert.Equal(t, Bar{
		ID: "a", Name: "A", Assignee: "x",
		Row: 0, Left: 1, Width: 5, CompletedWidth: 2.5,
		StartPoint: Point{X: 6, Y: 0}, EndPoint: Point{X: 1, Y: 0},
	}, bars[0])
	assert.Equal(t, 1, bars[1].Row)
	assert.Equal(t, 4, bars[1].Left)
	assert.Equal(t, Point{X: 7, Y: 1}, bars[1].StartPoint)
	assert.Equal(t, Point{X: 4, Y: 1}, bars[1].EndPoint)
}

func TestRoute(t *testing.T) {
	straight := Route(Point{X: 6, Y: 0}, Point{X: 6, Y: 3})
	assert.False(t, straight.Curved)

	curved := Route(Point{X: 6, Y: 0}, Point{X: 7, Y: 1})
	assert.True(t, curved.Curved)
	assert.Equal(t, Point{X: 6, Y: 0}, curved.Source)
	assert.Equal(t, Point{X: 7, Y: 1}, curved.Target)
}

func TestTodayMarker(t *testing.T) {
	anchor := day(t, "2024-01-01")
	assert.Equal(t, 14, TodayMarker(day(t, "2024-01-15"), anchor))
	assert.Equal(t, -3, TodayMarker(day(t, "2023-12-29"), anchor))
}

func TestTicks(t *testing.T) {
	tests := []struct {
		name   string
		end    string
		pos    []int
		labels []string
	}{
		{"three weeks", "2024-01-20", []int{1, 8, 15}, []string{"01/01", "08/01", "15/01"}},
		{"exact multiple of seven", "2024-01-15", []int{1, 8}, []string{"01/01", "08/01"}},
		{"one past a multiple", "2024-01-16", []int{1, 8, 15}, []string{"01/01", "08/01", "15/01"}},
		{"single day", "2024-01-02", []int{1}, []string{"01/01"}},
		{"crosses a month", "2024-02-10", []int{1, 8, 15, 22, 29, 36}, []string{"01/01", "08/01", "15/01", "22/01", "29/01", "05/02"}},
	}

	anchor := day(t, "2024-01-01")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks := Ticks(anchor, day(t, tt.end))
			var pos []int
			var labels []string
			for _, tk := range ticks {
				pos = append(pos, tk.Pos)
				labels = append(labels, tk.Label)
			}
			assert.Equal(t, tt.pos, pos)
			assert.Equal(t, tt.labels, labels)
		})
	}
}

func TestTicks_OneLabelPerTickForAnyLength(t *testing.T) {
	anchor := day(t, "2024-01-01")
	for days := 1; days < 100; days++ {
		ticks := Ticks(anchor, anchor.AddDate(0, 0, days))
		want := (days-1)/TickInterval + 1
		require.Len(t, ticks, want, "days=%d", days)
		for _, tk := range ticks {
			assert.Equal(t, anchor.AddDate(0, 0, tk.Pos-1), tk.Date)
		}
	}
}

func TestAssign(t *testing.T) {
	colors, diags := Assign([]string{"A", "B", "C"}, nil)
	again, _ := Assign([]string{"A", "B", "C"}, nil)
	assert.Empty(t, diags)
	assert.Equal(t, colors, again)
	assert.Equal(t, DefaultPalette[0], colors["A"])
	assert.Equal(t, DefaultPalette[2], colors["C"])

	roster := make([]string, len(DefaultPalette)+1)
	for i := range roster {
		roster[i] = fmt.Sprintf("member-%d", i)
	}
	colors, diags = Assign(roster, DefaultPalette)
	assert.Equal(t, DefaultPalette[0], colors[roster[len(DefaultPalette)]])
	require.Len(t, diags, 1)
	assert.Equal(t, PaletteExhausted, diags[0].Kind)

	colors, _ = Assign([]string{"x", "y", "z"}, Palette{"#000000", "#ffffff"})
	assert.Equal(t, "#000000", colors["z"])
}

func TestPaletteValidate(t *testing.T) {
	require.NoError(t, DefaultPalette.Validate())
	assert.Len(t, DefaultPalette, 20)
	assert.Error(t, Palette{"#12"}.Validate())
}

func TestRoster(t *testing.T) {
	r := NewRoster("Alice", "Bob", "Alice", " ")
	assert.Equal(t, []string{"Alice", "Bob"}, r.Members())

	require.ErrorIs(t, r.Add("Bob"), ErrDuplicateMember)
	require.ErrorIs(t, r.Add(""), ErrInvalidMember)
	require.NoError(t, r.Add("Carol"))

	require.ErrorIs(t, r.Remove("Alice", []string{"Alice"}), ErrMemberInUse)
	require.ErrorIs(t, r.Remove("Dave", nil), ErrUnknownMember)
	require.NoError(t, r.Remove("Alice", []string{"Bob"}))
	assert.Equal(t, []string{"Bob", "Carol"}, r.Members())

	r.Merge([]string{"Carol", "Erin", ""})
	assert.Equal(t, []string{"Bob", "Carol", "Erin"}, r.Members())
}
