package gantt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChart_Scene(t *testing.T) {
	c := NewChart("", day(t, "2024-01-08"))
	require.NoError(t, c.Roster.Add("Alice"))
	require.NoError(t, c.Roster.Add("Bob"))

	mustAppend(t, c.Store, task(t, "A", "2024-01-01", "2024-01-05"))
	in := task(t, "B", "2024-01-05", "2024-01-10", "A")
	in.Assignee = "Bob"
	mustAppend(t, c.Store, in)

	s := c.Scene()
	assert.Equal(t, DefaultTitle, s.Title)
	assert.Equal(t, day(t, "2024-01-01"), s.Anchor)
	assert.Equal(t, 7, s.Today)
	require.Len(t, s.Bars, 2)
	assert.Equal(t, DefaultPalette[0], s.Bars[0].Color)
	assert.Equal(t, DefaultPalette[1], s.Bars[1].Color)
	assert.Equal(t, []LegendEntry{{"Alice", DefaultPalette[0]}, {"Bob", DefaultPalette[1]}}, s.Legend)

	require.Len(t, s.Arrows, 1)
	assert.Equal(t, Point{X: 6, Y: 0}, s.Arrows[0].Source)
	assert.Equal(t, Point{X: 5, Y: 1}, s.Arrows[0].Target)
	assert.True(t, s.Arrows[0].Curved)
	assert.Len(t, s.Ticks, 2)
	assert.Empty(t, s.Diagnostics)
}

func TestChart_SceneStraightArrow(t *testing.T) {
	c := NewChart("Plan", day(t, "2024-01-01"))
	require.NoError(t, c.Roster.Add("Alice"))
	mustAppend(t, c.Store, task(t, "A", "2024-01-01", "2024-01-05"))
	// A ends at x=6 (left 1, width 5 including the end day) and B starts there.
	mustAppend(t, c.Store, task(t, "B", "2024-01-06", "2024-01-09", "A"))

	s := c.Scene()
	require.Len(t, s.Arrows, 1)
	assert.Equal(t, s.Bars[0].StartPoint.X, s.Bars[1].EndPoint.X)
	assert.False(t, s.Arrows[0].Curved)
}

func TestChart_SceneDegradesGracefully(t *testing.T) {
	c := NewChart("Plan", day(t, "2024-01-01"))
	c.Palette = Palette{"#111111"}
	require.NoError(t, c.Roster.Add("Alice"))
	require.NoError(t, c.Roster.Add("Bob"))

	mustAppend(t, c.Store, task(t, "B", "2024-01-05", "2024-01-10", "ghost"))
	in := task(t, "C", "2024-01-05", "2024-01-10")
	in.Assignee = "Zed"
	mustAppend(t, c.Store, in)

	s := c.Scene()
	require.Len(t, s.Bars, 2)
	assert.Empty(t, s.Arrows)
	assert.Equal(t, FallbackColor, s.Bars[1].Color)

	kinds := map[DiagnosticKind]int{}
	for _, d := range s.Diagnostics {
		kinds[d.Kind]++
	}
	assert.Equal(t, map[DiagnosticKind]int{
		PaletteExhausted:   1,
		UnknownAssignee:    1,
		DanglingDependency: 1,
	}, kinds)
}

func TestChart_EmptySceneUsesToday(t *testing.T) {
	c := NewChart("Plan", day(t, "2024-05-01"))
	s := c.Scene()
	assert.Equal(t, day(t, "2024-05-01"), s.Anchor)
	assert.Equal(t, 0, s.Today)
	assert.Empty(t, s.Bars)
	assert.Len(t, s.Ticks, 1)
}

func TestChart_RemoveMember(t *testing.T) {
	c := NewChart("Plan", day(t, "2024-01-01"))
	require.NoError(t, c.Roster.Add("Alice"))
	require.NoError(t, c.Roster.Add("Bob"))
	mustAppend(t, c.Store, task(t, "A", "2024-01-01", "2024-01-04"))

	require.ErrorIs(t, c.RemoveMember("Alice"), ErrMemberInUse)
	require.NoError(t, c.RemoveMember("Bob"))
	assert.Equal(t, []string{"Alice"}, c.Roster.Members())

	assert.False(t, c.TodayPinned)
	c.SetToday(day(t, "2024-01-03"))
	assert.True(t, c.TodayPinned)
	assert.Equal(t, 2, c.Scene().Today)
	c.UnpinToday(day(t, "2024-01-05"))
	assert.False(t, c.TodayPinned)
	assert.Equal(t, 4, c.Scene().Today)
}

func TestChart_UnassignedTaskIsNotDiagnosed(t *testing.T) {
	c := NewChart("Plan", day(t, "2024-01-01"))
	in := task(t, "A", "2024-01-01", "2024-01-04")
	in.Assignee = ""
	mustAppend(t, c.Store, in)

	s := c.Scene()
	assert.Equal(t, FallbackColor, s.Bars[0].Color)
	assert.Empty(t, s.Diagnostics)
}
